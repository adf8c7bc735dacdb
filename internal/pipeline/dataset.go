// Package pipeline is the analytics engine: risk radar, cash planning,
// compliance scoring, forecasting, and variance. Every function is a pure
// derivation from its explicit inputs, including the reference time.
package pipeline

import (
	"math"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

// Dataset is the record set a caller assembles for the engine.
// Nil slices are treated as empty.
type Dataset struct {
	Items        []model.RecurringItem
	Transactions []model.Transaction
}

// ItemsFor returns the obligations owned by ledgerID.
// An empty ledgerID selects every obligation.
func (d Dataset) ItemsFor(ledgerID string) []model.RecurringItem {
	if ledgerID == "" {
		return d.Items
	}
	out := make([]model.RecurringItem, 0, len(d.Items))
	for _, it := range d.Items {
		if it.LedgerID == ledgerID {
			out = append(out, it)
		}
	}
	return out
}

// TransactionsFor returns the transactions owned by ledgerID.
// An empty ledgerID selects every transaction.
func (d Dataset) TransactionsFor(ledgerID string) []model.Transaction {
	if ledgerID == "" {
		return d.Transactions
	}
	out := make([]model.Transaction, 0, len(d.Transactions))
	for _, tx := range d.Transactions {
		if tx.Owner.LedgerID == ledgerID {
			out = append(out, tx)
		}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampScore(v float64) int {
	return int(math.Round(clamp(v, 0, 100)))
}

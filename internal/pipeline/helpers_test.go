package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

const ledger = "L1"

// testNow is mid-afternoon so tests catch missing start-of-day normalization.
var testNow = time.Date(2025, 3, 9, 15, 30, 0, 0, time.Local)

func day(offset int) time.Time {
	return model.Day(2025, 3, 9).AddDate(0, 0, offset)
}

func obligation(id string, amount float64, mutate ...func(*model.RecurringItem)) model.RecurringItem {
	it := model.RecurringItem{
		ID:        id,
		LedgerID:  ledger,
		Title:     id,
		Category:  model.CategoryOperational,
		Frequency: model.Monthly,
		Amount:    amount,
		Status:    model.StatusOpen,
	}
	for _, m := range mutate {
		m(&it)
	}
	return it
}

func due(offset int) func(*model.RecurringItem) {
	return func(it *model.RecurringItem) { it.NextDueDate = day(offset) }
}

func highRisk(it *model.RecurringItem) { it.RiskLevel = model.RiskHigh }
func required(it *model.RecurringItem) { it.Required = true }

func category(c model.Category) func(*model.RecurringItem) {
	return func(it *model.RecurringItem) { it.Category = c }
}

func tx(offset int, amount float64, typ model.TxType) model.Transaction {
	return model.Transaction{
		ID:     "tx",
		Owner:  model.OwnerRef{LedgerID: ledger},
		Date:   day(offset),
		Amount: amount,
		Type:   typ,
	}
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %.6f, want %.6f", name, got, want)
	}
}

package model

import "time"

// OwnerRef points a transaction at its owning ledger.
type OwnerRef struct {
	LedgerID string
}

// Transaction is a recorded cash movement. The engine never mutates it.
type Transaction struct {
	ID       string
	Owner    OwnerRef
	Date     time.Time
	Amount   float64
	Type     TxType
	Category string
	Note     string
}

// LedgerID returns the owning ledger.
func (t Transaction) LedgerID() string {
	return t.Owner.LedgerID
}

// Direction resolves the transaction type, falling back to the sign of
// Amount when Type is unset. A zero amount with no type is TxUnset.
func (t Transaction) Direction() TxType {
	if t.Type != TxUnset {
		return t.Type
	}
	switch {
	case t.Amount > 0:
		return TxIncome
	case t.Amount < 0:
		return TxExpense
	default:
		return TxUnset
	}
}

// Magnitude returns the absolute amount.
func (t Transaction) Magnitude() float64 {
	if t.Amount < 0 {
		return -t.Amount
	}
	return t.Amount
}

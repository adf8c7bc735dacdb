package model

import "time"

// Budgets are a ledger's spending targets. Zero means no target set.
type Budgets struct {
	MonthlyTarget float64
	YearlyTarget  float64
}

// Ledger scopes obligations and transactions.
type Ledger struct {
	ID        string
	Name      string
	Budgets   Budgets
	CreatedAt time.Time
}

// Normalize clamps negative or non-finite targets to 0.
func (b Budgets) Normalize() Budgets {
	return Budgets{
		MonthlyTarget: SanitizeAmount(b.MonthlyTarget),
		YearlyTarget:  SanitizeAmount(b.YearlyTarget),
	}
}

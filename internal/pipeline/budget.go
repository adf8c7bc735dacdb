package pipeline

import (
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

// ActualTotals sums expense transactions for the month and the year of now.
func ActualTotals(ledgerID string, ds Dataset, now time.Time) (month, year float64) {
	today := model.StartOfDay(now)
	for _, tx := range ds.TransactionsFor(ledgerID) {
		if tx.Date.IsZero() || tx.Direction() != model.TxExpense {
			continue
		}
		d := tx.Date.Local()
		if d.Year() != today.Year() {
			continue
		}
		year += tx.Magnitude()
		if d.Month() == today.Month() {
			month += tx.Magnitude()
		}
	}
	return month, year
}

// BudgetHealth evaluates actual spend against the ledger's targets.
// Status is neutral when neither target is set; otherwise the worse ratio
// decides: up to 0.7 good, up to 1.0 warn, above that danger.
func BudgetHealth(actualMonth, actualYear float64, budgets model.Budgets) model.BudgetHealth {
	b := budgets.Normalize()
	h := model.BudgetHealth{
		Monthly: horizon(b.MonthlyTarget, actualMonth),
		Yearly:  horizon(b.YearlyTarget, actualYear),
	}
	if h.Monthly.Ratio == nil && h.Yearly.Ratio == nil {
		h.Status = model.BudgetNeutral
		return h
	}

	var worst float64
	for _, r := range []*float64{h.Monthly.Ratio, h.Yearly.Ratio} {
		if r != nil && *r > worst {
			worst = *r
		}
	}
	switch {
	case worst <= 0.7:
		h.Status = model.BudgetGood
	case worst <= 1.0:
		h.Status = model.BudgetWarn
	default:
		h.Status = model.BudgetDanger
	}
	return h
}

func horizon(target, actual float64) model.BudgetHorizon {
	h := model.BudgetHorizon{Target: target, Actual: actual}
	if target <= 0 {
		return h
	}
	ratio := actual / target
	h.Gap = target - actual
	h.Ratio = &ratio
	return h
}

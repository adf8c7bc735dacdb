package pipeline

import (
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

// Cash plan window lengths in days. Each window includes today.
const (
	windowToday = 0
	windowWeek  = 7
	windowMonth = 30
)

func newWindow(days int) model.PlanWindow {
	return model.PlanWindow{Days: days, ByCategory: make(map[model.Category]float64)}
}

func addToWindow(w *model.PlanWindow, it model.RecurringItem) {
	w.Count++
	w.Total += it.Amount
	w.ByCategory[it.Category] += it.Amount
	if it.Required {
		w.RequiredTotal += it.Amount
	}
	if it.RiskLevel == model.RiskHigh {
		w.HighRiskTotal += it.Amount
	}
}

// CashPlan buckets priced obligations into today, 7-day, and 30-day
// windows. Larger windows include the smaller ones. Overdue amounts are
// reported separately and never land in a window.
func CashPlan(ledgerID string, ds Dataset, now time.Time) model.CashPlan {
	today := model.StartOfDay(now)
	plan := model.CashPlan{
		Today: newWindow(windowToday),
		Week:  newWindow(windowWeek),
		Month: newWindow(windowMonth),
	}

	for _, it := range ds.ItemsFor(ledgerID) {
		if !it.IsPriced() {
			plan.Counts.Unpriced++
			if it.Required {
				plan.Counts.RequiredUnpriced++
				if it.RiskLevel == model.RiskHigh {
					plan.Counts.HighRiskRequiredUnpriced++
				}
			}
			if it.Origin == model.OriginSeeded {
				plan.Counts.SeededUnpriced++
			}
			continue
		}
		plan.Counts.Priced++

		d, ok := it.DaysUntilDue(today)
		if !ok {
			continue
		}
		if d < 0 {
			plan.OverdueTotal += it.Amount
			continue
		}
		for _, w := range []*model.PlanWindow{&plan.Today, &plan.Week, &plan.Month} {
			if d <= w.Days {
				addToWindow(w, it)
			}
		}
	}

	// Deferring everything due is the only snooze strategy modeled.
	for _, w := range []*model.PlanWindow{&plan.Today, &plan.Week, &plan.Month} {
		w.SavingsIfSnoozed = w.Total
	}
	return plan
}

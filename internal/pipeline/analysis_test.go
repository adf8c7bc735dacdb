package pipeline

import (
	"testing"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

func TestAnalyze_ScopesToLedger(t *testing.T) {
	foreign := obligation("foreign", 9000, due(1), highRisk)
	foreign.LedgerID = "L2"
	ds := Dataset{
		Items: []model.RecurringItem{
			obligation("rent", 1000, due(3)),
			obligation("gosi", 0, required, category(model.CategorySystem)),
			foreign,
		},
		Transactions: []model.Transaction{tx(-2, 400, model.TxExpense)},
	}

	a := Analyze(ledger, ds, testNow, AnalysisOptions{
		Inflow:  800,
		Income:  FixedIncome{Monthly: 800},
		Budgets: model.Budgets{MonthlyTarget: 1000},
	})

	if a.Radar.Burn.MonthlyTotal != 1000 {
		t.Errorf("Burn = %.0f, want 1000", a.Radar.Burn.MonthlyTotal)
	}
	if a.Plan.Week.Total != 1000 {
		t.Errorf("Week.Total = %.0f, want 1000", a.Plan.Week.Total)
	}
	if len(a.Forecast) != ForecastMonths {
		t.Errorf("Forecast months = %d", len(a.Forecast))
	}
	if !a.Gap.HasDeficit() {
		t.Error("expected a cash gap with 1000 outflow against 800 inflow")
	}
	if a.Compliance.Score >= 100 {
		t.Errorf("Compliance.Score = %d, want a deduction for the unpriced system item", a.Compliance.Score)
	}
	if a.Budget.Status != model.BudgetGood {
		t.Errorf("Budget.Status = %q, want good", a.Budget.Status)
	}
	for _, e := range a.Inbox {
		if e.Item.LedgerID != ledger {
			t.Errorf("inbox leaked %q from another ledger", e.Item.ID)
		}
	}
	if len(a.Insights) == 0 {
		t.Error("Insights empty")
	}
}

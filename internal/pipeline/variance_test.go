package pipeline

import (
	"testing"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

func monthTx(date string, amount float64, typ model.TxType, cat string) model.Transaction {
	d, _ := model.ParseDate(date)
	return model.Transaction{ID: date, Owner: model.OwnerRef{LedgerID: ledger}, Date: d, Amount: amount, Type: typ, Category: cat}
}

func TestActualsByMonth(t *testing.T) {
	foreign := monthTx("2025-03-03", 999, model.TxExpense, "")
	foreign.Owner.LedgerID = "L2"
	ds := Dataset{Transactions: []model.Transaction{
		monthTx("2025-03-01", 5000, model.TxIncome, ""),
		monthTx("2025-03-05", 1200, model.TxExpense, "maintenance"),
		monthTx("2025-03-10", -300, model.TxUnset, ""),
		monthTx("2025-04-02", 200, model.TxUnset, ""),
		monthTx("2025-04-03", 0, model.TxExpense, ""),
		{Owner: model.OwnerRef{LedgerID: ledger}, Amount: 10, Type: model.TxExpense},
		foreign,
	}}

	got := ActualsByMonth(ledger, ds)
	if len(got) != 2 || got[0].Key != "2025-03" || got[1].Key != "2025-04" {
		t.Fatalf("months = %+v", got)
	}
	mar := got[0]
	approx(t, "Mar income", mar.Income, 5000)
	approx(t, "Mar expense", mar.Expense, 1500)
	approx(t, "Mar net", mar.Net, 3500)
	approx(t, "Mar maintenance", mar.ExpenseByCategory[model.CategoryMaintenance], 1200)
	approx(t, "Mar other", mar.ExpenseByCategory[model.CategoryOther], 300)
	approx(t, "Apr income", got[1].Income, 200)
}

func TestIncomeModels(t *testing.T) {
	fixed := NewIncomeModel(IncomeConfig{Mode: "Fixed", Fixed: 4000})
	for _, k := range []string{"2025-01", "2025-07", "2030-12"} {
		if v := fixed.ExpectedIncome(k); v != 4000 {
			t.Errorf("fixed(%s) = %.0f", k, v)
		}
	}

	seasonal := NewIncomeModel(IncomeConfig{Mode: IncomeSeasonal, Base: 1000, Peak: 3000, PeakMonths: []int{6, 7}})
	if v := seasonal.ExpectedIncome("2025-07"); v != 3000 {
		t.Errorf("seasonal peak = %.0f", v)
	}
	if v := seasonal.ExpectedIncome("2025-01"); v != 1000 {
		t.Errorf("seasonal base = %.0f", v)
	}

	manual := NewIncomeModel(IncomeConfig{Mode: IncomeManual, Manual: map[string]float64{"2025-02": 750}})
	if v := manual.ExpectedIncome("2025-02"); v != 750 {
		t.Errorf("manual = %.0f", v)
	}
	if v := manual.ExpectedIncome("2025-03"); v != 0 {
		t.Errorf("manual unlisted = %.0f", v)
	}

	if v := NewIncomeModel(IncomeConfig{Mode: "lottery", Fixed: 1e6}).ExpectedIncome("2025-01"); v != 0 {
		t.Errorf("unknown mode = %.0f, want 0", v)
	}
}

func TestExpectedByMonth(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local)
	months := Forecast6M(ledger, Dataset{Items: []model.RecurringItem{obligation("a", 800)}}, now, nil)
	exp := ExpectedByMonth(months, FixedIncome{Monthly: 1000})
	if len(exp) != 6 || exp[0].Key != "2025-03" {
		t.Fatalf("expected = %+v", exp)
	}
	approx(t, "income", exp[0].Income, 1000)
	approx(t, "expense", exp[0].Expense, 800)
	approx(t, "net", exp[0].Net, 200)

	if got := ExpectedByMonth(months, nil); got[0].Income != 0 {
		t.Errorf("nil model income = %.0f", got[0].Income)
	}
}

func TestVariance(t *testing.T) {
	actual := []model.MonthFigures{
		{Key: "2025-03", Income: 5000, Expense: 1500, Net: 3500, ExpenseByCategory: map[model.Category]float64{
			model.CategoryMaintenance: 1200, model.CategoryOther: 300,
		}},
		{Key: "2025-04", Income: 200, Net: 200},
		{Key: "2025-05", Income: 1000, Expense: 500, Net: 500},
	}
	expected := []model.MonthFigures{
		{Key: "2025-03", Income: 6000, Expense: 1000, Net: 5000, ExpenseByCategory: map[model.Category]float64{
			model.CategoryMaintenance: 400, model.CategoryOther: 600,
		}},
		{Key: "2025-04", Income: 6000, Expense: 1000, Net: 5000},
		{Key: "2025-05", Income: 1000, Expense: 500, Net: 500},
		{Key: "2025-06", Income: 0, Expense: 0},
	}

	got := Variance(actual, expected)
	if len(got) != 4 {
		t.Fatalf("got %d months", len(got))
	}

	mar := got[0]
	approx(t, "Mar expense delta", mar.ExpenseDelta, 500)
	approx(t, "Mar income delta", mar.IncomeDelta, -1000)
	approx(t, "Mar maintenance delta", mar.CategoryDelta[model.CategoryMaintenance], 800)
	if len(mar.Reasons) != 2 || mar.Reasons[0] != "expense overrun, led by maintenance (+800.00)" || mar.Reasons[1] != "income shortfall" {
		t.Errorf("Mar reasons = %q", mar.Reasons)
	}

	if r := got[1].Reasons; len(r) != 1 || r[0] != "income shortfall" {
		t.Errorf("Apr reasons = %q", r)
	}
	if r := got[2].Reasons; len(r) != 1 || r[0] != "near expectation" {
		t.Errorf("May reasons = %q", r)
	}
	if got[3].Key != "2025-06" || got[3].Reasons[0] != "near expectation" {
		t.Errorf("Jun = %+v", got[3])
	}
}

func TestVariance_OverrunWithoutCategories(t *testing.T) {
	got := Variance(
		[]model.MonthFigures{{Key: "2025-01", Expense: 300}},
		[]model.MonthFigures{{Key: "2025-01", Expense: 100}},
	)
	if got[0].Reasons[0] != "expense overrun" {
		t.Errorf("reasons = %q", got[0].Reasons)
	}
}

func TestBudgetHealth(t *testing.T) {
	h := BudgetHealth(500, 5000, model.Budgets{})
	if h.Status != model.BudgetNeutral || h.Monthly.Ratio != nil || h.Monthly.Gap != 0 {
		t.Errorf("no targets = %+v", h)
	}

	tests := []struct {
		month, year float64
		budgets     model.Budgets
		want        model.BudgetStatus
	}{
		{600, 0, model.Budgets{MonthlyTarget: 1000}, model.BudgetGood},
		{600, 9000, model.Budgets{MonthlyTarget: 1000, YearlyTarget: 10000}, model.BudgetWarn},
		{1200, 0, model.Budgets{MonthlyTarget: 1000}, model.BudgetDanger},
		{0, 5000, model.Budgets{MonthlyTarget: -5, YearlyTarget: 10000}, model.BudgetGood},
	}
	for _, tt := range tests {
		h := BudgetHealth(tt.month, tt.year, tt.budgets)
		if h.Status != tt.want {
			t.Errorf("BudgetHealth(%.0f, %.0f, %+v) = %q, want %q", tt.month, tt.year, tt.budgets, h.Status, tt.want)
		}
	}

	h = BudgetHealth(1200, 0, model.Budgets{MonthlyTarget: 1000})
	approx(t, "gap", h.Monthly.Gap, -200)
	approx(t, "ratio", *h.Monthly.Ratio, 1.2)
	if h.Yearly.Ratio != nil {
		t.Error("yearly ratio should be undefined without a target")
	}
}

func TestActualTotals(t *testing.T) {
	ds := Dataset{Transactions: []model.Transaction{
		monthTx("2025-03-01", 100, model.TxExpense, ""),
		monthTx("2025-01-15", 200, model.TxExpense, ""),
		monthTx("2024-12-30", 400, model.TxExpense, ""),
		monthTx("2025-03-02", 900, model.TxIncome, ""),
	}}
	month, year := ActualTotals(ledger, ds, testNow)
	approx(t, "month", month, 100)
	approx(t, "year", year, 300)
}

package pipeline

import (
	"testing"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

func TestBurnRateAndNinetyDay_SingleMonthlyDueToday(t *testing.T) {
	ds := Dataset{Items: []model.RecurringItem{obligation("rent", 1000, due(0))}}

	br := BurnRate(ledger, ds)
	if br.MonthlyTotal != 1000 || br.Count != 1 {
		t.Fatalf("BurnRate = %+v", br)
	}

	r := NinetyDayRisk(ledger, ds, testNow)
	approx(t, "DueTotal", r.DueTotal, 1000)
	approx(t, "Baseline", r.Baseline, 3000)
	approx(t, "Ratio", r.Ratio, 1.0/3)
	if r.Level != model.SeverityLow {
		t.Errorf("Level = %q, want low", r.Level)
	}
}

func TestBurnRate_ExcludesUnpricedNonMonthlyAndOtherLedgers(t *testing.T) {
	other := obligation("foreign", 700)
	other.LedgerID = "L2"
	ds := Dataset{Items: []model.RecurringItem{
		obligation("unpriced", 0),
		obligation("yearly", 1200, func(it *model.RecurringItem) { it.Frequency = model.Yearly }),
		obligation("ok", 250),
		other,
	}}
	if br := BurnRate(ledger, ds); br.MonthlyTotal != 250 || br.Count != 1 {
		t.Errorf("BurnRate = %+v, want 250/1", br)
	}

	b := BurnBundle(ledger, ds)
	approx(t, "NinetyDay", b.NinetyDay, 750)
	approx(t, "Yearly", b.Yearly, 3000)
}

func TestNinetyDayRisk_ZeroBaseline(t *testing.T) {
	yearly := obligation("license", 500, due(10), func(it *model.RecurringItem) { it.Frequency = model.Yearly })
	r := NinetyDayRisk(ledger, Dataset{Items: []model.RecurringItem{yearly}}, testNow)
	if r.Ratio != 9 || r.Level != model.SeverityCritical {
		t.Errorf("zero baseline with dues = %+v, want ratio 9 critical", r)
	}

	r = NinetyDayRisk(ledger, Dataset{}, testNow)
	if r.Ratio != 0 || r.Level != model.SeverityLow {
		t.Errorf("empty = %+v, want ratio 0 low", r)
	}
}

func TestNinetyDayRisk_Bands(t *testing.T) {
	tests := []struct {
		dueAmount float64
		want      model.Severity
	}{
		{2000, model.SeverityLow},
		{2600, model.SeverityMedium},
		{3600, model.SeverityHigh},
		{4500, model.SeverityCritical},
	}
	for _, tt := range tests {
		ds := Dataset{Items: []model.RecurringItem{
			obligation("burn", 1000),
			obligation("due", tt.dueAmount, due(45), func(it *model.RecurringItem) { it.Frequency = model.Adhoc }),
		}}
		// Baseline 3000; the undated burn item contributes no dues.
		if got := NinetyDayRisk(ledger, ds, testNow).Level; got != tt.want {
			t.Errorf("due %.0f: level = %q, want %q", tt.dueAmount, got, tt.want)
		}
	}
}

func TestNinetyDayRisk_IgnoresBeyondHorizon(t *testing.T) {
	ds := Dataset{Items: []model.RecurringItem{
		obligation("near", 100, due(90)),
		obligation("far", 900, due(91)),
	}}
	approx(t, "DueTotal", NinetyDayRisk(ledger, ds, testNow).DueTotal, 100)
}

func TestDisciplineTrend(t *testing.T) {
	ds := Dataset{
		Items: []model.RecurringItem{
			obligation("a", 100, due(-10)),
			obligation("b", 100, due(0)),
			obligation("c", 100, due(-70)),
			obligation("d", 100, due(5)),
		},
		Transactions: []model.Transaction{
			tx(-5, 100, model.TxExpense),
			tx(-20, 100, model.TxExpense),
			tx(-61, 100, model.TxExpense),
		},
	}
	d := DisciplineTrend(ledger, ds, testNow)
	if d.Due != 2 || d.Paid != 2 {
		t.Fatalf("due/paid = %d/%d, want 2/2", d.Due, d.Paid)
	}
	if d.Ratio != 1 || d.Trend != model.TrendImproving {
		t.Errorf("ratio/trend = %.2f/%q", d.Ratio, d.Trend)
	}
}

func TestDisciplineTrend_ClampAndNoData(t *testing.T) {
	ds := Dataset{
		Items: []model.RecurringItem{obligation("a", 100, due(-1))},
		Transactions: []model.Transaction{
			tx(-1, 1, model.TxExpense), tx(-2, 1, model.TxExpense), tx(-3, 1, model.TxExpense),
		},
	}
	if d := DisciplineTrend(ledger, ds, testNow); d.Ratio != 2 {
		t.Errorf("ratio = %.2f, want clamped 2", d.Ratio)
	}

	d := DisciplineTrend(ledger, Dataset{}, testNow)
	if d.Ratio != 0 || d.Trend != model.TrendDeclining {
		t.Errorf("no data = %.2f/%q, want 0/declining", d.Ratio, d.Trend)
	}

	ds.Transactions = ds.Transactions[:0]
	ds.Items = append(ds.Items, obligation("b", 100, due(-2)))
	ds.Transactions = append(ds.Transactions, tx(-1, 1, model.TxExpense))
	if d := DisciplineTrend(ledger, ds, testNow); d.Trend != model.TrendSteady {
		t.Errorf("half paid trend = %q, want steady", d.Trend)
	}
}

func TestHasHighRiskCluster(t *testing.T) {
	unpricedHigh := func(id string) model.RecurringItem { return obligation(id, 0, highRisk) }

	tests := []struct {
		name  string
		items []model.RecurringItem
		want  bool
	}{
		{"none", nil, false},
		{"two unpriced", []model.RecurringItem{unpricedHigh("a"), unpricedHigh("b")}, false},
		{"three unpriced", []model.RecurringItem{unpricedHigh("a"), unpricedHigh("b"), unpricedHigh("c")}, true},
		{"priced overdue", []model.RecurringItem{obligation("a", 10, highRisk, due(-1))}, true},
		{"priced due today", []model.RecurringItem{obligation("a", 10, highRisk, due(0))}, false},
	}
	for _, tt := range tests {
		if got := HasHighRiskCluster(ledger, Dataset{Items: tt.items}, testNow); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCashPressure(t *testing.T) {
	cp := CashPressure(ledger, Dataset{}, testNow)
	if cp.Score != 0 || cp.Band != model.PressureStable {
		t.Fatalf("empty ledger = %d/%q, want 0/stable", cp.Score, cp.Band)
	}

	ds := Dataset{Items: []model.RecurringItem{
		obligation("a", 0, highRisk),
		obligation("b", 100, due(-3)),
		obligation("c", 100, due(5)),
	}}
	// 1/3*40 + 1/2*30 + 20 + (1-0)*10 = 58.33
	cp = CashPressure(ledger, ds, testNow)
	if cp.Score != 58 || cp.Band != model.PressureMedium {
		t.Errorf("score/band = %d/%q, want 58/medium_pressure", cp.Score, cp.Band)
	}

	ds = Dataset{Items: []model.RecurringItem{obligation("a", 0, highRisk, due(-1))}}
	cp = CashPressure(ledger, ds, testNow)
	if cp.Score != 70 || cp.Band != model.PressureHigh {
		t.Errorf("score/band = %d/%q, want 70/high_pressure", cp.Score, cp.Band)
	}
}

func TestCashPressure_AlwaysInRange(t *testing.T) {
	var items []model.RecurringItem
	for i := 0; i < 20; i++ {
		items = append(items, obligation("x", float64(i%2)*10, highRisk, due(-i)))
	}
	cp := CashPressure(ledger, Dataset{Items: items}, testNow)
	if cp.Score < 0 || cp.Score > 100 {
		t.Errorf("score %d out of range", cp.Score)
	}
}

func TestRadar_MatchesComponents(t *testing.T) {
	ds := Dataset{
		Items: []model.RecurringItem{
			obligation("a", 500, due(2)),
			obligation("b", 0, highRisk, required),
		},
		Transactions: []model.Transaction{tx(-3, 200, model.TxExpense)},
	}
	r := Radar(ledger, ds, testNow)
	if r.Burn != BurnRate(ledger, ds) {
		t.Errorf("Burn = %+v", r.Burn)
	}
	if r.Pressure != CashPressure(ledger, ds, testNow) {
		t.Errorf("Pressure = %+v", r.Pressure)
	}
	if r.NinetyDay != NinetyDayRisk(ledger, ds, testNow) {
		t.Errorf("NinetyDay = %+v", r.NinetyDay)
	}
	if r.Bundle.Yearly != 6000 {
		t.Errorf("Bundle.Yearly = %.0f", r.Bundle.Yearly)
	}
}

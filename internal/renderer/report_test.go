package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/pipeline"
)

var reportNow = time.Date(2025, 3, 9, 9, 0, 0, 0, time.Local)

func sampleAnalysis() (model.Ledger, pipeline.Analysis) {
	l := model.Ledger{ID: "L1", Name: "Olaya Office", Budgets: model.Budgets{MonthlyTarget: 2000}}
	ds := pipeline.Dataset{
		Items: []model.RecurringItem{
			{ID: "rent", LedgerID: "L1", Title: "Office rent", Category: model.CategoryOperational,
				Frequency: model.Monthly, Amount: 1500, NextDueDate: model.Day(2025, 3, 12), Status: model.StatusOpen},
			{ID: "cr", LedgerID: "L1", Title: "Commercial registration", Category: model.CategorySystem,
				Frequency: model.Yearly, Required: true, RiskLevel: model.RiskHigh, Status: model.StatusOpen},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Owner: model.OwnerRef{LedgerID: "L1"}, Date: model.Day(2025, 3, 2), Amount: 1500, Type: model.TxExpense, Category: "operational"},
		},
	}
	a := pipeline.Analyze(l.ID, ds, reportNow, pipeline.AnalysisOptions{
		Inflow:  1000,
		Income:  pipeline.FixedIncome{Monthly: 1000},
		Budgets: l.Budgets,
	})
	return l, a
}

func TestReportMarkdown_Sections(t *testing.T) {
	l, a := sampleAnalysis()
	out := ReportMarkdown(l, a, "USD")

	for _, want := range []string{
		"# Financial Report: Olaya Office",
		"## Risk Radar",
		"## Cash Plan",
		"## Daily Inbox",
		"## Compliance",
		"## Six-Month Forecast",
		"### Insights",
		"## Variance",
		"## Budget",
		"Office rent",
		"Commercial registration",
		"required_high_risk_unpriced",
		"system obligation has no price",
		"$1,500.00",
		"2025-03",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestReportMarkdown_EmptyLedger(t *testing.T) {
	l := model.Ledger{ID: "empty"}
	a := pipeline.Analyze(l.ID, pipeline.Dataset{}, reportNow, pipeline.AnalysisOptions{})
	out := ReportMarkdown(l, a, "")

	if !strings.Contains(out, "# Financial Report: empty") {
		t.Error("ledger id should title an unnamed ledger")
	}
	if !strings.Contains(out, "Nothing needs attention today.") {
		t.Error("empty inbox message missing")
	}
	if !strings.Contains(out, "No budget targets set.") {
		t.Error("neutral budget message missing")
	}
}

func TestRadarMarkdown(t *testing.T) {
	_, a := sampleAnalysis()
	out := RadarMarkdown(a.Radar, "USD")
	if !strings.HasPrefix(strings.TrimSpace(out), "## Risk Radar") {
		t.Errorf("unexpected radar markdown:\n%s", out)
	}
	if !strings.Contains(out, "Monthly burn") {
		t.Error("monthly burn row missing")
	}
}

func TestRender_PlainStyle(t *testing.T) {
	out, err := Render("# Title\n\nbody text\n", "notty", 40)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(out, "body text") {
		t.Errorf("rendered output lost body:\n%s", out)
	}
}

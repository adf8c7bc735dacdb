package pipeline

import (
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

// AnalysisOptions carries the caller's planning assumptions.
type AnalysisOptions struct {
	Factors Factors
	Inflow  float64
	Income  IncomeModel
	Budgets model.Budgets
}

// Analysis is every engine output for one ledger at one instant.
type Analysis struct {
	LedgerID   string
	Now        time.Time
	Radar      model.RadarReport
	Plan       model.CashPlan
	Inbox      []model.InboxEntry
	Compliance model.Compliance
	RunRate    model.RunRate
	Forecast   []model.ForecastMonth
	Gap        model.CashGap
	Insights   []string
	Variance   []model.MonthVariance
	Budget     model.BudgetHealth
}

// Analyze runs the whole engine over the ledger's records.
func Analyze(ledgerID string, ds Dataset, now time.Time, opts AnalysisOptions) Analysis {
	scoped := Dataset{Items: ds.ItemsFor(ledgerID), Transactions: ds.TransactionsFor(ledgerID)}

	months := Forecast6M("", scoped, now, opts.Factors)
	gap := CashGap(months, opts.Inflow)
	month, year := ActualTotals("", scoped, now)

	return Analysis{
		LedgerID:   ledgerID,
		Now:        now,
		Radar:      Radar("", scoped, now),
		Plan:       CashPlan("", scoped, now),
		Inbox:      DailyInbox("", scoped, now),
		Compliance: ComplianceShield("", scoped, now),
		RunRate:    MonthlyRunRate("", scoped),
		Forecast:   months,
		Gap:        gap,
		Insights:   Insights(months, gap),
		Variance:   Variance(ActualsByMonth("", scoped), ExpectedByMonth(months, opts.Income)),
		Budget:     BudgetHealth(month, year, opts.Budgets),
	}
}

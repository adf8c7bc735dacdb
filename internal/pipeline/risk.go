package pipeline

import (
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

const (
	ninetyDayHorizon  = 90
	disciplineWindow  = 60
	pressureWindow    = 30
	zeroBaselineRatio = 9
)

// BurnRate sums priced monthly obligations for the ledger.
func BurnRate(ledgerID string, ds Dataset) model.BurnRate {
	var br model.BurnRate
	for _, it := range ds.ItemsFor(ledgerID) {
		if !it.IsPriced() || it.Frequency != model.Monthly {
			continue
		}
		br.MonthlyTotal += it.Amount
		br.Count++
	}
	return br
}

// BurnBundle projects the monthly burn to 90 days and a year.
func BurnBundle(ledgerID string, ds Dataset) model.BurnBundle {
	br := BurnRate(ledgerID, ds)
	return model.BurnBundle{
		Monthly:   br.MonthlyTotal,
		NinetyDay: br.MonthlyTotal * 3,
		Yearly:    br.MonthlyTotal * 12,
		Count:     br.Count,
	}
}

// NinetyDayRisk compares priced dues up to 90 days out, overdue included,
// against three months of burn. Each obligation is counted once.
func NinetyDayRisk(ledgerID string, ds Dataset, now time.Time) model.NinetyDayRisk {
	today := model.StartOfDay(now)
	var r model.NinetyDayRisk
	for _, it := range ds.ItemsFor(ledgerID) {
		if !it.IsPriced() {
			continue
		}
		d, ok := it.DaysUntilDue(today)
		if !ok || d > ninetyDayHorizon {
			continue
		}
		r.DueTotal += it.Amount
	}
	r.Baseline = BurnRate(ledgerID, ds).MonthlyTotal * 3

	switch {
	case r.Baseline > 0:
		r.Ratio = r.DueTotal / r.Baseline
	case r.DueTotal > 0:
		r.Ratio = zeroBaselineRatio
	default:
		r.Ratio = 0
	}

	switch {
	case r.Ratio >= 1.5:
		r.Level = model.SeverityCritical
	case r.Ratio >= 1.15:
		r.Level = model.SeverityHigh
	case r.Ratio >= 0.85:
		r.Level = model.SeverityMedium
	default:
		r.Level = model.SeverityLow
	}
	return r
}

// DisciplineTrend compares obligations due in the trailing 60 days with
// transactions recorded in the same window.
func DisciplineTrend(ledgerID string, ds Dataset, now time.Time) model.Discipline {
	d := discipline(ledgerID, ds, now, disciplineWindow)
	d.Ratio = clamp(d.Ratio, 0, 2)
	switch {
	case d.Due == 0:
		d.Trend = model.TrendDeclining
	case d.Ratio >= 0.8:
		d.Trend = model.TrendImproving
	case d.Ratio >= 0.5:
		d.Trend = model.TrendSteady
	default:
		d.Trend = model.TrendDeclining
	}
	return d
}

// discipline counts dues and payments in [today-window, today].
// Ratio is left unclamped; 0 when nothing was due.
func discipline(ledgerID string, ds Dataset, now time.Time, window int) model.Discipline {
	today := model.StartOfDay(now)
	d := model.Discipline{WindowDays: window}
	for _, it := range ds.ItemsFor(ledgerID) {
		days, ok := it.DaysUntilDue(today)
		if ok && days <= 0 && days >= -window {
			d.Due++
		}
	}
	for _, tx := range ds.TransactionsFor(ledgerID) {
		if tx.Date.IsZero() {
			continue
		}
		days := model.DaysBetween(today, tx.Date)
		if days <= 0 && days >= -window {
			d.Paid++
		}
	}
	if d.Due > 0 {
		d.Ratio = float64(d.Paid) / float64(d.Due)
	}
	return d
}

// HasHighRiskCluster reports more than two unpriced high-risk obligations,
// or any priced high-risk obligation that is overdue.
func HasHighRiskCluster(ledgerID string, ds Dataset, now time.Time) bool {
	today := model.StartOfDay(now)
	unpriced := 0
	for _, it := range ds.ItemsFor(ledgerID) {
		if it.RiskLevel != model.RiskHigh {
			continue
		}
		if !it.IsPriced() {
			unpriced++
			continue
		}
		if it.IsOverdue(today) {
			return true
		}
	}
	return unpriced > 2
}

// CashPressure scores how stretched the ledger is, 0 to 100.
func CashPressure(ledgerID string, ds Dataset, now time.Time) model.CashPressure {
	today := model.StartOfDay(now)
	items := ds.ItemsFor(ledgerID)

	var priced, unpriced, overdue int
	var highUnpriced bool
	for _, it := range items {
		if !it.IsPriced() {
			unpriced++
			if it.RiskLevel == model.RiskHigh {
				highUnpriced = true
			}
			continue
		}
		priced++
		if it.IsOverdue(today) {
			overdue++
		}
	}

	var cp model.CashPressure
	if len(items) > 0 {
		cp.UnpricedRatio = float64(unpriced) / float64(len(items))
	}
	if priced > 0 {
		cp.OverdueRatio = float64(overdue) / float64(priced)
	}
	cp.HighRiskUnpriced = highUnpriced

	d := discipline(ledgerID, ds, now, pressureWindow)
	if d.Due > 0 {
		cp.DisciplinePenalty = 1 - clamp(d.Ratio, 0, 1)
	}

	score := cp.UnpricedRatio*40 + cp.OverdueRatio*30 + cp.DisciplinePenalty*10
	if highUnpriced {
		score += 20
	}
	cp.Score = clampScore(score)

	switch {
	case cp.Score >= 80:
		cp.Band = model.PressureOperational
	case cp.Score >= 70:
		cp.Band = model.PressureHigh
	case cp.Score >= 40:
		cp.Band = model.PressureMedium
	default:
		cp.Band = model.PressureStable
	}
	return cp
}

// Radar bundles every risk radar signal for one ledger.
func Radar(ledgerID string, ds Dataset, now time.Time) model.RadarReport {
	scoped := Dataset{
		Items:        ds.ItemsFor(ledgerID),
		Transactions: ds.TransactionsFor(ledgerID),
	}
	return model.RadarReport{
		Burn:        BurnRate("", scoped),
		Bundle:      BurnBundle("", scoped),
		NinetyDay:   NinetyDayRisk("", scoped, now),
		Discipline:  DisciplineTrend("", scoped, now),
		HighRisk:    HasHighRiskCluster("", scoped, now),
		Pressure:    CashPressure("", scoped, now),
		GeneratedAt: now,
	}
}

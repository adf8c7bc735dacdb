package pipeline

import (
	"fmt"
	"math"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/model"
)

// ForecastMonths is the projection horizon.
const ForecastMonths = 6

// MonthlyRunRate sums monthly-equivalent spend of priced obligations per
// category. Every category bucket is present, even when zero.
func MonthlyRunRate(ledgerID string, ds Dataset) model.RunRate {
	rr := model.RunRate{ByCategory: emptyBuckets()}
	for _, it := range ds.ItemsFor(ledgerID) {
		v := model.MonthlyEquivalent(it)
		if v == 0 {
			continue
		}
		rr.ByCategory[model.ParseCategory(string(it.Category))] += v
		rr.Total += v
	}
	return rr
}

// Forecast6M projects outflow for six calendar months starting with the
// month of now. Each priced obligation contributes its monthly equivalent,
// scaled by its scenario factor, to every month; due dates are not
// simulated.
func Forecast6M(ledgerID string, ds Dataset, now time.Time, factors Factors) []model.ForecastMonth {
	byCat := emptyBuckets()
	var total float64
	for _, it := range ds.ItemsFor(ledgerID) {
		v := model.MonthlyEquivalent(it)
		if v == 0 {
			continue
		}
		v *= factors.For(ClassifyScenario(it))
		byCat[model.ParseCategory(string(it.Category))] += v
		total += v
	}

	top := largestCategory(byCat)
	note := "no projected outflow"
	if top != "" {
		note = fmt.Sprintf("largest: %s", top)
	}

	start := model.FirstOfMonth(now)
	months := make([]model.ForecastMonth, 0, ForecastMonths)
	for i := 0; i < ForecastMonths; i++ {
		m := start.AddDate(0, i, 0)
		cats := make(map[model.Category]float64, len(byCat))
		for k, v := range byCat {
			cats[k] = v
		}
		months = append(months, model.ForecastMonth{
			Month:       m,
			Key:         model.MonthKey(m),
			Total:       total,
			ByCategory:  cats,
			TopCategory: top,
			Note:        note,
		})
	}
	return months
}

// CashGap walks the forecast with a constant monthly inflow and records
// the first month the running total goes negative and the deepest point.
func CashGap(months []model.ForecastMonth, inflow float64) model.CashGap {
	gap := model.CashGap{Inflow: inflow}
	var cum float64
	for _, m := range months {
		net := inflow - m.Total
		cum += net
		gap.Months = append(gap.Months, model.GapMonth{
			Key:        m.Key,
			Inflow:     inflow,
			Outflow:    m.Total,
			Net:        net,
			Cumulative: cum,
		})
		if cum < 0 && gap.FirstDeficitMonth == "" {
			gap.FirstDeficitMonth = m.Key
		}
		gap.MaxDeficit = math.Min(gap.MaxDeficit, cum)
	}
	return gap
}

// maintenanceSkew flags maintenance above this multiple of the category mean.
const maintenanceSkew = 1.2

// Insights returns up to three short observations about the forecast.
func Insights(months []model.ForecastMonth, gap model.CashGap) []string {
	totals := emptyBuckets()
	var sum float64
	for _, m := range months {
		for cat, v := range m.ByCategory {
			totals[model.ParseCategory(string(cat))] += v
			sum += v
		}
	}

	var out []string
	if top := largestCategory(totals); top != "" && sum > 0 {
		out = append(out, fmt.Sprintf("Largest pressure: %s (%.0f%% of projected outflow)",
			top, totals[top]/sum*100))
	}

	mean := sum / float64(len(model.Categories))
	if maint := totals[model.CategoryMaintenance]; mean > 0 && maint > maintenanceSkew*mean {
		out = append(out, fmt.Sprintf("Maintenance is disproportionate: %.1fx the category average",
			maint/mean))
	}

	if gap.HasDeficit() {
		out = append(out, fmt.Sprintf("Cash gap expected from %s (lowest point %.2f)",
			gap.FirstDeficitMonth, gap.MaxDeficit))
	} else {
		out = append(out, "No cash gap projected over the forecast horizon")
	}
	return out
}

func emptyBuckets() map[model.Category]float64 {
	m := make(map[model.Category]float64, len(model.Categories))
	for _, c := range model.Categories {
		m[c] = 0
	}
	return m
}

// largestCategory returns the biggest positive bucket, ties broken by the
// fixed category order, or "" when every bucket is zero.
func largestCategory(m map[model.Category]float64) model.Category {
	var best model.Category
	var bestV float64
	for _, c := range model.Categories {
		if v := m[c]; v > bestV {
			best, bestV = c, v
		}
	}
	return best
}

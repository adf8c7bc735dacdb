package tui

import (
	"strings"

	"github.com/badroneai/finance-flow-sub001/internal/tui/components"
	"github.com/badroneai/finance-flow-sub001/internal/tui/theme"
)

func (a App) renderForecastTab(cw int) string {
	t := theme.Active
	months := a.analysis.Forecast
	gap := a.analysis.Gap
	var b strings.Builder

	gapValue, gapNote, gapTone := "none", "inflow covers outflow", t.Green
	if gap.HasDeficit() {
		gapValue, gapNote, gapTone = gap.FirstDeficitMonth, "lowest "+a.money(gap.MaxDeficit), t.Red
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Run Rate", Value: a.money(a.analysis.RunRate.Total), Note: "per month"},
		{Label: "Inflow", Value: a.money(gap.Inflow), Note: "per month"},
		{Label: "Cash Gap", Value: gapValue, Note: gapNote, Tone: gapTone},
	}, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)

	values := make([]float64, len(months))
	labels := make([]string, len(months))
	for i, m := range months {
		values[i] = m.Total
		labels[i] = m.Month.Format("Jan")
	}
	chart := components.ContentCard("Projected Outflow",
		components.BarChart(values, labels, t.Blue, components.CardInnerWidth(halves[0]), 8), halves[0])

	rows := make([][]string, 0, len(gap.Months))
	for _, g := range gap.Months {
		rows = append(rows, []string{g.Key, a.money(g.Outflow), a.money(g.Net), a.money(g.Cumulative)})
	}
	walk := components.ContentCard("Cash Walk",
		table([]string{"Month", "Outflow", "Net", "Cumulative"}, rows, components.CardInnerWidth(halves[1])), halves[1])

	b.WriteString(components.CardRow([]string{chart, walk}))
	b.WriteString("\n")

	inner := components.CardInnerWidth(cw)
	lines := make([]string, len(a.analysis.Insights))
	for i, s := range a.analysis.Insights {
		lines[i] = "• " + truncStr(s, inner-2)
	}
	b.WriteString(components.ContentCard("Insights", strings.Join(lines, "\n"), cw))
	return b.String()
}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/tui/components"
	"github.com/badroneai/finance-flow-sub001/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderPlanTab(cw int) string {
	p := a.analysis.Plan
	var b strings.Builder

	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Due Today", Value: a.money(p.Today.Total), Note: plural(p.Today.Count, "item")},
		{Label: "Next 7 Days", Value: a.money(p.Week.Total), Note: plural(p.Week.Count, "item")},
		{Label: "Next 30 Days", Value: a.money(p.Month.Total), Note: plural(p.Month.Count, "item")},
		{Label: "Overdue", Value: a.money(p.OverdueTotal), Tone: overdueTone(p.OverdueTotal)},
	}, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	inner := components.CardInnerWidth(halves[0])

	rows := [][]string{}
	for _, w := range []struct {
		label string
		win   model.PlanWindow
	}{{"Today", p.Today}, {"7 days", p.Week}, {"30 days", p.Month}} {
		rows = append(rows, []string{w.label, a.money(w.win.RequiredTotal), a.money(w.win.HighRiskTotal), a.money(w.win.SavingsIfSnoozed)})
	}
	left := components.ContentCard("Windows",
		table([]string{"Window", "Required", "High risk", "If snoozed"}, rows, inner), halves[0])

	counts := kvLines([][2]string{
		{"Priced", strconv.Itoa(p.Counts.Priced)},
		{"Unpriced", strconv.Itoa(p.Counts.Unpriced)},
		{"Required unpriced", strconv.Itoa(p.Counts.RequiredUnpriced)},
		{"High-risk required unpriced", strconv.Itoa(p.Counts.HighRiskRequiredUnpriced)},
		{"Seeded unpriced", strconv.Itoa(p.Counts.SeededUnpriced)},
	}, components.CardInnerWidth(halves[1]))
	right := components.ContentCard("Pricing Coverage", counts, halves[1])
	b.WriteString(components.CardRow([]string{left, right}))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("30-Day Outflow by Category",
		a.categoryBars(p.Month.ByCategory, components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) categoryBars(byCat map[model.Category]float64, width int) string {
	t := theme.Active
	peak := 0.0
	for _, v := range byCat {
		peak = max(peak, v)
	}
	if peak == 0 {
		return dim("Nothing priced is due in the next 30 days.")
	}

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	fill := lipgloss.NewStyle().Background(t.Surface)

	barMax := max(width-32, 10)
	var lines []string
	for _, c := range model.Categories {
		v := byCat[c]
		n := int(v / peak * float64(barMax))
		lines = append(lines, label.Render(fmt.Sprintf("%-12s", c))+
			bar.Render(strings.Repeat("█", n))+
			fill.Render(strings.Repeat(" ", barMax-n+1))+
			value.Render(a.money(v)))
	}
	return strings.Join(lines, "\n")
}

// table renders a header row and right-aligned value columns.
func table(headers []string, rows [][]string, width int) string {
	t := theme.Active
	head := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	cell := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	cols := len(headers)
	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i := 0; i < cols && i < len(r); i++ {
			widths[i] = max(widths[i], lipgloss.Width(r[i]))
		}
	}
	// First column absorbs the slack.
	used := 0
	for _, w := range widths[1:] {
		used += w + 2
	}
	widths[0] = max(widths[0], width-used)

	line := func(vals []string, style lipgloss.Style) string {
		var b strings.Builder
		for i := 0; i < cols; i++ {
			v := ""
			if i < len(vals) {
				v = vals[i]
			}
			if i == 0 {
				b.WriteString(style.Width(widths[0]).Render(truncStr(v, widths[0])))
				continue
			}
			b.WriteString(style.Render("  "))
			b.WriteString(style.Width(widths[i]).Align(lipgloss.Right).Render(v))
		}
		return b.String()
	}

	out := []string{line(headers, head)}
	for _, r := range rows {
		out = append(out, line(r, cell))
	}
	return strings.Join(out, "\n")
}

func overdueTone(v float64) lipgloss.Color {
	if v > 0 {
		return theme.Active.Red
	}
	return ""
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}

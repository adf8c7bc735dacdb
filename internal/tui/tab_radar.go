package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/tui/components"
	"github.com/badroneai/finance-flow-sub001/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderRadarTab(cw int) string {
	r := a.analysis.Radar
	c := a.analysis.Compliance
	var b strings.Builder

	b.WriteString(components.MetricCardRow([]components.Metric{
		{
			Label: "Cash Pressure",
			Value: strconv.Itoa(r.Pressure.Score),
			Note:  string(r.Pressure.Band),
			Tone:  theme.ForLevel(string(r.Pressure.Band)),
		},
		{
			Label: "Monthly Burn",
			Value: a.money(r.Bundle.Monthly),
			Note:  a.money(r.Bundle.Yearly) + "/yr",
		},
		{
			Label: "90-Day Risk",
			Value: fmt.Sprintf("%.2fx", r.NinetyDay.Ratio),
			Note:  fmt.Sprintf("%s · %s due", r.NinetyDay.Level, a.money(r.NinetyDay.DueTotal)),
			Tone:  theme.ForLevel(string(r.NinetyDay.Level)),
		},
		{
			Label: "Compliance",
			Value: strconv.Itoa(c.Score),
			Note:  string(c.Status),
			Tone:  theme.ForLevel(string(c.Status)),
		},
	}, cw))
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)

	drivers := kvLines([][2]string{
		{"Unpriced share", cli.FormatPercent(r.Pressure.UnpricedRatio)},
		{"Overdue share", cli.FormatPercent(r.Pressure.OverdueRatio)},
		{"High-risk unpriced", yesNo(r.Pressure.HighRiskUnpriced)},
		{"Discipline penalty", fmt.Sprintf("%.0f", r.Pressure.DisciplinePenalty)},
		{"Discipline", fmt.Sprintf("%s (%d/%d in %dd)", r.Discipline.Trend, r.Discipline.Paid, r.Discipline.Due, r.Discipline.WindowDays)},
		{"High-risk cluster", yesNo(r.HighRisk)},
	}, components.CardInnerWidth(halves[0]))
	left := components.ContentCard("Pressure Drivers", drivers, halves[0])

	var comp []string
	if len(c.Drivers) == 0 {
		comp = append(comp, dim("No compliance deductions."))
	}
	for _, d := range c.Drivers {
		comp = append(comp, fmt.Sprintf("%s %s", warnText(fmt.Sprintf("-%d", d.Weight)),
			truncStr(d.Title+": "+d.Reason, components.CardInnerWidth(halves[1])-5)))
	}
	comp = append(comp, "", a.budgetLines(components.CardInnerWidth(halves[1])))
	right := components.ContentCard("Compliance & Budget", strings.Join(comp, "\n"), halves[1])

	b.WriteString(components.CardRow([]string{left, right}))
	return b.String()
}

func (a App) budgetLines(width int) string {
	h := a.analysis.Budget
	if h.Status == model.BudgetNeutral {
		return dim("No budget targets set.")
	}
	barW := max(width-22, 8)
	var lines []string
	for _, row := range []struct {
		label string
		h     model.BudgetHorizon
	}{{"Month", h.Monthly}, {"Year", h.Yearly}} {
		if row.h.Ratio == nil {
			continue
		}
		lines = append(lines, components.RatioBar(row.label, *row.h.Ratio, 6, barW))
	}
	return strings.Join(lines, "\n")
}

func (a App) money(v float64) string {
	return cli.FormatMoney(v, a.currency)
}

// kvLines renders label/value pairs with values right-aligned to width.
func kvLines(pairs [][2]string, width int) string {
	t := theme.Active
	label := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	fill := lipgloss.NewStyle().Background(t.Surface)

	lines := make([]string, len(pairs))
	for i, p := range pairs {
		gap := max(width-lipgloss.Width(p[0])-lipgloss.Width(p[1]), 1)
		lines[i] = label.Render(p[0]) + fill.Render(strings.Repeat(" ", gap)) + value.Render(p[1])
	}
	return strings.Join(lines, "\n")
}

func dim(s string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(s)
}

func warnText(s string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true).Render(s)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

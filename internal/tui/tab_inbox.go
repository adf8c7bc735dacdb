package tui

import (
	"fmt"
	"strings"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/tui/components"
	"github.com/badroneai/finance-flow-sub001/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var reasonLabels = map[model.InboxReason]string{
	model.ReasonOverdueHighRisk:          "overdue, high risk",
	model.ReasonOverdue:                  "overdue",
	model.ReasonRequiredHighRiskUnpriced: "required, high risk, no price",
	model.ReasonRequiredUnpriced:         "required, no price",
	model.ReasonDue7:                     "due within 7 days",
	model.ReasonDue14:                    "due within 14 days",
}

func (a App) renderInboxTab(cw, h int) string {
	t := theme.Active
	entries := a.analysis.Inbox
	if len(entries) == 0 {
		return components.ContentCard("Daily Inbox", dim("Nothing needs attention today."), cw)
	}

	widths := components.LayoutRow(cw, 5)
	listW := widths[0] + widths[1] + widths[2]
	detailW := cw - listW
	inner := components.CardInnerWidth(listW)

	// Window the list around the cursor.
	visible := max(h-4, 3)
	start := 0
	if a.inboxCursor >= visible {
		start = a.inboxCursor - visible + 1
	}
	end := min(start+visible, len(entries))

	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	sel := lipgloss.NewStyle().Foreground(t.Background).Background(t.Accent).Bold(true)

	var lines []string
	for i := start; i < end; i++ {
		e := entries[i]
		due := cli.FormatDueIn(e.DueIn, e.HasDue)
		titleW := max(inner-lipgloss.Width(due)-2, 8)
		text := fmt.Sprintf("%-*s  %s", titleW, truncStr(e.Item.Title, titleW), due)
		if i == a.inboxCursor {
			lines = append(lines, sel.Width(inner).Render(text))
		} else {
			lines = append(lines, row.Foreground(reasonColor(e.Reason)).Width(inner).Render(text))
		}
	}
	list := components.ContentCard(fmt.Sprintf("Daily Inbox (%d)", len(entries)), strings.Join(lines, "\n"), listW)

	detail := components.ContentCard("Details", a.inboxDetail(entries[a.inboxCursor], components.CardInnerWidth(detailW)), detailW)
	return components.CardRow([]string{list, detail})
}

func (a App) inboxDetail(e model.InboxEntry, width int) string {
	it := e.Item
	amount := "no price"
	if it.IsPriced() {
		amount = a.money(it.Amount)
	}
	due := "no date"
	if it.HasDueDate() {
		due = model.FormatDate(it.NextDueDate)
	}
	risk := string(it.RiskLevel)
	if risk == "" {
		risk = "unset"
	}
	return kvLines([][2]string{
		{"Title", truncStr(it.Title, width-10)},
		{"Why", reasonLabels[e.Reason]},
		{"Amount", amount},
		{"Due", due},
		{"Frequency", string(it.Frequency)},
		{"Category", string(it.Category)},
		{"Risk", risk},
		{"Required", yesNo(it.Required)},
		{"Origin", string(it.Origin)},
		{"ID", it.ID},
	}, width)
}

func reasonColor(r model.InboxReason) lipgloss.Color {
	t := theme.Active
	switch r {
	case model.ReasonOverdueHighRisk, model.ReasonOverdue:
		return t.Red
	case model.ReasonRequiredHighRiskUnpriced, model.ReasonRequiredUnpriced:
		return t.Orange
	case model.ReasonDue7:
		return t.Yellow
	default:
		return t.TextPrimary
	}
}

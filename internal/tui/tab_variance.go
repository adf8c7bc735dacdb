package tui

import (
	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/tui/components"
)

func (a App) renderVarianceTab(cw int) string {
	rows := a.analysis.Variance
	if len(rows) == 0 {
		return components.ContentCard("Variance", dim("No transactions or forecast to compare."), cw)
	}

	out := make([][]string, 0, len(rows))
	for _, v := range rows {
		reason := ""
		if len(v.Reasons) > 0 {
			reason = v.Reasons[0]
		}
		out = append(out, []string{
			v.Key,
			a.money(v.Actual.Income),
			a.money(v.Actual.Expense),
			cli.FormatDelta(v.IncomeDelta),
			cli.FormatDelta(v.ExpenseDelta),
			cli.FormatDelta(v.NetDelta),
			reason,
		})
	}
	inner := components.CardInnerWidth(cw)
	return components.ContentCard("Actual vs Expected",
		table([]string{"Month", "Income", "Expense", "Income Δ", "Expense Δ", "Net Δ", "Reason"}, out, inner), cw)
}

// Package renderer turns engine outputs into Markdown documents.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/pipeline"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders the full ledger report.
func ReportMarkdown(l model.Ledger, a pipeline.Analysis, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	title := l.Name
	if title == "" {
		title = l.ID
	}
	doc.H1(fmt.Sprintf("Financial Report: %s", title))
	doc.PlainText(md.Italic("Generated " + a.Now.Format("2006-01-02 15:04")))

	radarSection(doc, a.Radar, currency)
	planSection(doc, a.Plan, currency)
	inboxSection(doc, a.Inbox, currency)
	complianceSection(doc, a.Compliance)
	forecastSection(doc, a, currency)
	varianceSection(doc, a.Variance, currency)
	budgetSection(doc, a.Budget, currency)

	return doc.String()
}

// RadarMarkdown renders the risk radar alone.
func RadarMarkdown(r model.RadarReport, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	radarSection(doc, r, currency)
	return doc.String()
}

func radarSection(doc *md.Markdown, r model.RadarReport, currency string) {
	doc.H2("Risk Radar")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("Cash Pressure"), md.Bold(fmt.Sprintf("%d (%s)", r.Pressure.Score, r.Pressure.Band))},
		Rows: [][]string{
			{"Monthly burn", cli.FormatMoney(r.Bundle.Monthly, currency)},
			{"90-day burn", cli.FormatMoney(r.Bundle.NinetyDay, currency)},
			{"Yearly burn", cli.FormatMoney(r.Bundle.Yearly, currency)},
			{"Due in 90 days", cli.FormatMoney(r.NinetyDay.DueTotal, currency)},
			{"90-day risk", fmt.Sprintf("%s (%.2fx)", r.NinetyDay.Level, r.NinetyDay.Ratio)},
			{"Discipline", fmt.Sprintf("%s (%d/%d paid)", r.Discipline.Trend, r.Discipline.Paid, r.Discipline.Due)},
			{"High-risk cluster", yesNo(r.HighRisk)},
		},
	})
}

func planSection(doc *md.Markdown, p model.CashPlan, currency string) {
	doc.H2("Cash Plan")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Window", "Items", "Total", "Required", "High Risk"},
	}
	for _, w := range []struct {
		label string
		win   model.PlanWindow
	}{{"Today", p.Today}, {"7 days", p.Week}, {"30 days", p.Month}} {
		table.Rows = append(table.Rows, []string{
			w.label,
			strconv.Itoa(w.win.Count),
			cli.FormatMoney(w.win.Total, currency),
			cli.FormatMoney(w.win.RequiredTotal, currency),
			cli.FormatMoney(w.win.HighRiskTotal, currency),
		})
	}
	doc.Table(table)

	var notes []string
	if p.OverdueTotal > 0 {
		notes = append(notes, fmt.Sprintf("%s already overdue", cli.FormatMoney(p.OverdueTotal, currency)))
	}
	if p.Counts.Unpriced > 0 {
		notes = append(notes, fmt.Sprintf("%d of %d obligations have no price (%d required, %d seeded)",
			p.Counts.Unpriced, p.Counts.Priced+p.Counts.Unpriced, p.Counts.RequiredUnpriced, p.Counts.SeededUnpriced))
	}
	if len(notes) > 0 {
		doc.BulletList(notes...)
	}
}

func inboxSection(doc *md.Markdown, entries []model.InboxEntry, currency string) {
	doc.H2("Daily Inbox")
	if len(entries) == 0 {
		doc.PlainText("Nothing needs attention today.")
		return
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Obligation", "Reason", "Due", "Amount"},
	}
	for _, e := range entries {
		amount := "unpriced"
		if e.Item.IsPriced() {
			amount = cli.FormatMoney(e.Item.Amount, currency)
		}
		table.Rows = append(table.Rows, []string{
			e.Item.Title,
			string(e.Reason),
			cli.FormatDueIn(e.DueIn, e.HasDue),
			amount,
		})
	}
	doc.Table(table)
}

func complianceSection(doc *md.Markdown, c model.Compliance) {
	doc.H2("Compliance")
	doc.PlainText(fmt.Sprintf("Score %s, status %s.", md.Bold(strconv.Itoa(c.Score)), md.Bold(string(c.Status))))
	if len(c.Drivers) == 0 {
		return
	}
	var drivers []string
	for _, d := range c.Drivers {
		drivers = append(drivers, fmt.Sprintf("%s: %s (-%d)", d.Title, d.Reason, d.Weight))
	}
	doc.OrderedList(drivers...)
}

func forecastSection(doc *md.Markdown, a pipeline.Analysis, currency string) {
	doc.H2("Six-Month Forecast")
	if len(a.Forecast) == 0 {
		return
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Month", "Outflow", "Net", "Cumulative", "Note"},
	}
	for i, m := range a.Forecast {
		net, cum := "", ""
		if i < len(a.Gap.Months) {
			net = cli.FormatMoney(a.Gap.Months[i].Net, currency)
			cum = cli.FormatMoney(a.Gap.Months[i].Cumulative, currency)
		}
		table.Rows = append(table.Rows, []string{m.Key, cli.FormatMoney(m.Total, currency), net, cum, m.Note})
	}
	doc.Table(table)

	if len(a.Insights) > 0 {
		doc.H3("Insights")
		doc.BulletList(a.Insights...)
	}
}

func varianceSection(doc *md.Markdown, rows []model.MonthVariance, currency string) {
	if len(rows) == 0 {
		return
	}
	doc.H2("Variance")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Month", "Income Δ", "Expense Δ", "Net Δ", "Reason"},
	}
	for _, v := range rows {
		reason := ""
		if len(v.Reasons) > 0 {
			reason = v.Reasons[0]
		}
		table.Rows = append(table.Rows, []string{
			v.Key,
			signedMoney(v.IncomeDelta, currency),
			signedMoney(v.ExpenseDelta, currency),
			signedMoney(v.NetDelta, currency),
			reason,
		})
	}
	doc.Table(table)
}

func budgetSection(doc *md.Markdown, h model.BudgetHealth, currency string) {
	doc.H2("Budget")
	if h.Status == model.BudgetNeutral {
		doc.PlainText("No budget targets set.")
		return
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{md.Bold(string(h.Status)), "Target", "Actual", "Used"},
	}
	for _, row := range []struct {
		label string
		h     model.BudgetHorizon
	}{{"This month", h.Monthly}, {"This year", h.Yearly}} {
		if row.h.Ratio == nil {
			continue
		}
		table.Rows = append(table.Rows, []string{
			row.label,
			cli.FormatMoney(row.h.Target, currency),
			cli.FormatMoney(row.h.Actual, currency),
			cli.FormatRatio(row.h.Ratio),
		})
	}
	doc.Table(table)
}

func signedMoney(v float64, currency string) string {
	if v > 0 {
		return "+" + cli.FormatMoney(v, currency)
	}
	return cli.FormatMoney(v, currency)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

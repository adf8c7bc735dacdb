package cmd

import (
	"fmt"
	"strconv"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/pipeline"

	"github.com/spf13/cobra"
)

var radarCmd = &cobra.Command{
	Use:   "radar",
	Short: "Risk radar: burn, 90-day risk, discipline and cash pressure",
	RunE:  runRadar,
}

func init() {
	rootCmd.AddCommand(radarCmd)
}

func runRadar(_ *cobra.Command, _ []string) error {
	l, a, err := analyze()
	if err != nil {
		return err
	}
	printHeader("Risk Radar", l, a)

	r := a.Radar
	cur := currency()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Burn",
		Headers: []string{"Horizon", "Amount"},
		Rows: [][]string{
			{"Monthly", cli.FormatMoney(r.Bundle.Monthly, cur)},
			{"90 days", cli.FormatMoney(r.Bundle.NinetyDay, cur)},
			{"Yearly", cli.FormatMoney(r.Bundle.Yearly, cur)},
		},
	}))
	fmt.Println(cli.RenderNote(fmt.Sprintf("%d priced monthly obligations", r.Burn.Count)))
	fmt.Println()

	fmt.Print(cli.RenderKV([][2]string{
		{"Due in 90 days", cli.FormatMoney(r.NinetyDay.DueTotal, cur)},
		{"Baseline (3 x burn)", cli.FormatMoney(r.NinetyDay.Baseline, cur)},
		{"90-day ratio", fmt.Sprintf("%.2fx", r.NinetyDay.Ratio)},
		{"90-day risk", cli.RenderBand(string(r.NinetyDay.Level))},
		{"Discipline", fmt.Sprintf("%s (%d paid / %d due in %dd)",
			cli.RenderBand(string(r.Discipline.Trend)), r.Discipline.Paid, r.Discipline.Due, r.Discipline.WindowDays)},
		{"High-risk cluster", yesNo(r.HighRisk)},
	}))
	fmt.Println()

	printPressure(r.Pressure)
	return nil
}

func printPressure(p model.CashPressure) {
	fmt.Print(cli.RenderKV([][2]string{
		{"Cash pressure", strconv.Itoa(p.Score) + " " + cli.RenderBand(string(p.Band))},
		{"Unpriced share", cli.FormatPercent(p.UnpricedRatio)},
		{"Overdue share", cli.FormatPercent(p.OverdueRatio)},
		{"High-risk unpriced", yesNo(p.HighRiskUnpriced)},
		{"Discipline penalty", fmt.Sprintf("%.0f", p.DisciplinePenalty)},
	}))
}

// printHeader prints the title bar and the ledger/date context line.
func printHeader(title string, l model.Ledger, a pipeline.Analysis) {
	name := l.Name
	if name == "" {
		name = l.ID
	}
	fmt.Println()
	fmt.Println(cli.RenderTitle(title))
	fmt.Println(cli.RenderNote(fmt.Sprintf("%s · as of %s", name, model.FormatDate(a.Now))))
	fmt.Println()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

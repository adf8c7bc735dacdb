package cmd

import (
	"fmt"
	"strconv"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/model"

	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Cash plan: what falls due today, this week and this month",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	l, a, err := analyze()
	if err != nil {
		return err
	}
	printHeader("Cash Plan", l, a)

	p := a.Plan
	cur := currency()
	rows := [][]string{}
	for _, w := range []struct {
		label string
		win   model.PlanWindow
	}{{"Today", p.Today}, {"7 days", p.Week}, {"30 days", p.Month}} {
		rows = append(rows, []string{
			w.label,
			strconv.Itoa(w.win.Count),
			cli.FormatMoney(w.win.Total, cur),
			cli.FormatMoney(w.win.RequiredTotal, cur),
			cli.FormatMoney(w.win.HighRiskTotal, cur),
			cli.FormatMoney(w.win.SavingsIfSnoozed, cur),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Windows",
		Headers: []string{"Window", "Items", "Total", "Required", "High Risk", "If Snoozed"},
		Rows:    rows,
	}))
	fmt.Println()

	maxCat := 0.0
	for _, v := range p.Month.ByCategory {
		maxCat = max(maxCat, v)
	}
	if maxCat > 0 {
		fmt.Println("  30-day outflow by category")
		for _, c := range model.Categories {
			fmt.Println(cli.RenderHorizontalBar(string(c), p.Month.ByCategory[c], maxCat, 30))
		}
		fmt.Println()
	}

	fmt.Print(cli.RenderKV([][2]string{
		{"Overdue", cli.FormatMoney(p.OverdueTotal, cur)},
		{"Priced", strconv.Itoa(p.Counts.Priced)},
		{"Unpriced", strconv.Itoa(p.Counts.Unpriced)},
		{"Required unpriced", strconv.Itoa(p.Counts.RequiredUnpriced)},
		{"High-risk required unpriced", strconv.Itoa(p.Counts.HighRiskRequiredUnpriced)},
		{"Seeded unpriced", strconv.Itoa(p.Counts.SeededUnpriced)},
	}))
	return nil
}

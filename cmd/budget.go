package cmd

import (
	"fmt"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/model"

	"github.com/spf13/cobra"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget health for the current month and year",
	RunE:  runBudget,
}

func init() {
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(_ *cobra.Command, _ []string) error {
	l, a, err := analyze()
	if err != nil {
		return err
	}
	printHeader("Budget", l, a)

	h := a.Budget
	if h.Status == model.BudgetNeutral {
		fmt.Println(cli.RenderNote("No budget targets set. Use `financeflow ledger budget --monthly N --yearly N`."))
		return nil
	}

	cur := currency()
	rows := [][]string{}
	for _, r := range []struct {
		label string
		h     model.BudgetHorizon
	}{{"Month", h.Monthly}, {"Year", h.Yearly}} {
		rows = append(rows, []string{
			r.label,
			cli.FormatMoney(r.h.Target, cur),
			cli.FormatMoney(r.h.Actual, cur),
			cli.FormatMoney(r.h.Gap, cur),
			cli.FormatRatio(r.h.Ratio),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Horizon", "Target", "Actual", "Gap", "Used"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Print(cli.RenderKV([][2]string{{"Status", cli.RenderBand(string(h.Status))}}))
	return nil
}

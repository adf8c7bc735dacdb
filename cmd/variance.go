package cmd

import (
	"fmt"
	"strings"

	"github.com/badroneai/finance-flow-sub001/internal/cli"

	"github.com/spf13/cobra"
)

var varianceCmd = &cobra.Command{
	Use:   "variance",
	Short: "Actual vs expected income and expense per month",
	RunE:  runVariance,
}

func init() {
	rootCmd.AddCommand(varianceCmd)
}

func runVariance(_ *cobra.Command, _ []string) error {
	l, a, err := analyze()
	if err != nil {
		return err
	}
	printHeader("Variance", l, a)

	if len(a.Variance) == 0 {
		fmt.Println(cli.RenderNote("No transactions or forecast months to compare."))
		return nil
	}

	cur := currency()
	rows := make([][]string, 0, len(a.Variance))
	for _, v := range a.Variance {
		rows = append(rows, []string{
			v.Key,
			cli.FormatMoney(v.Actual.Income, cur),
			cli.FormatMoney(v.Expected.Income, cur),
			cli.FormatMoney(v.Actual.Expense, cur),
			cli.FormatMoney(v.Expected.Expense, cur),
			cli.FormatDelta(v.NetDelta),
			strings.Join(v.Reasons, "; "),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Income", "Expected", "Expense", "Expected", "Net Δ", "Reasons"},
		Rows:    rows,
	}))
	fmt.Println(cli.RenderNote("Expected income comes from the [income] config section; expected expense from the forecast."))
	return nil
}

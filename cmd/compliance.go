package cmd

import (
	"fmt"
	"strconv"

	"github.com/badroneai/finance-flow-sub001/internal/cli"

	"github.com/spf13/cobra"
)

var complianceCmd = &cobra.Command{
	Use:   "compliance",
	Short: "Compliance shield: score and the obligations pulling it down",
	RunE:  runCompliance,
}

func init() {
	rootCmd.AddCommand(complianceCmd)
}

func runCompliance(_ *cobra.Command, _ []string) error {
	l, a, err := analyze()
	if err != nil {
		return err
	}
	printHeader("Compliance Shield", l, a)

	c := a.Compliance
	fmt.Print(cli.RenderKV([][2]string{
		{"Score", strconv.Itoa(c.Score) + " / 100"},
		{"Status", cli.RenderBand(string(c.Status))},
		{"System overdue", yesNo(c.SystemOverdue)},
	}))
	fmt.Println()

	if len(c.Drivers) == 0 {
		fmt.Println(cli.RenderNote("No deductions."))
		return nil
	}
	rows := make([][]string, 0, len(c.Drivers))
	for _, d := range c.Drivers {
		rows = append(rows, []string{d.Title, d.Reason, "-" + strconv.Itoa(d.Weight)})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:    "Deductions",
		Headers:  []string{"Obligation", "Reason", "Weight"},
		Rows:     rows,
		TextCols: 2,
	}))
	return nil
}

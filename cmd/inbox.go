package cmd

import (
	"fmt"

	"github.com/badroneai/finance-flow-sub001/internal/cli"

	"github.com/spf13/cobra"
)

var flagInboxLimit int

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "Daily inbox: obligations that need attention, most urgent first",
	RunE:  runInbox,
}

func init() {
	inboxCmd.Flags().IntVarP(&flagInboxLimit, "limit", "n", 0, "Show at most n entries (0 = all)")
	rootCmd.AddCommand(inboxCmd)
}

func runInbox(_ *cobra.Command, _ []string) error {
	l, a, err := analyze()
	if err != nil {
		return err
	}
	printHeader("Daily Inbox", l, a)

	entries := a.Inbox
	if len(entries) == 0 {
		fmt.Println(cli.RenderNote("Nothing needs attention today."))
		return nil
	}
	if flagInboxLimit > 0 && len(entries) > flagInboxLimit {
		entries = entries[:flagInboxLimit]
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		amount := "unpriced"
		if e.Item.IsPriced() {
			amount = cli.FormatMoney(e.Item.Amount, currency())
		}
		rows = append(rows, []string{
			e.Item.Title,
			string(e.Reason),
			cli.FormatDueIn(e.DueIn, e.HasDue),
			amount,
			e.Item.ID,
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Obligation", "Reason", "Due", "Amount", "ID"},
		Rows:     rows,
		TextCols: 3,
	}))
	if len(entries) < len(a.Inbox) {
		fmt.Println(cli.RenderNote(fmt.Sprintf("%d more not shown", len(a.Inbox)-len(entries))))
	}
	return nil
}

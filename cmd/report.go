package cmd

import (
	"fmt"
	"os"

	"github.com/badroneai/finance-flow-sub001/internal/renderer"

	"github.com/spf13/cobra"
)

var (
	flagReportRaw   bool
	flagReportOut   string
	flagReportStyle string
	flagReportWidth int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Full Markdown report of every view for the selected ledger",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().BoolVar(&flagReportRaw, "raw", false, "Print raw Markdown instead of rendering it")
	reportCmd.Flags().StringVarP(&flagReportOut, "output", "o", "", "Write raw Markdown to this file")
	reportCmd.Flags().StringVar(&flagReportStyle, "style", "", "glamour style (dark, light, notty; default auto)")
	reportCmd.Flags().IntVar(&flagReportWidth, "width", renderer.DefaultWidth, "Word-wrap width")
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	l, a, err := analyze()
	if err != nil {
		return err
	}
	md := renderer.ReportMarkdown(l, a, currency())

	if flagReportOut != "" {
		if err := os.WriteFile(flagReportOut, []byte(md), 0o600); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		progressf("  Wrote %s\n", flagReportOut)
		return nil
	}
	if flagReportRaw {
		fmt.Print(md)
		return nil
	}

	out, err := renderer.Render(md, flagReportStyle, flagReportWidth)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}

package cmd

import (
	"fmt"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagRentPct        float64
	flagUtilitiesPct   float64
	flagMaintenancePct float64
	flagMarketingPct   float64
	flagSystemPct      float64
	flagOtherPct       float64
	flagInflow         float64
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Six-month outflow forecast with cash gap and insights",
	Long: `Project the next six months of outflow from the recurring obligations.
Scenario flags are percentage changes per class (10 = +10%) and override
the [scenario] section of the config for this run.`,
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().Float64Var(&flagRentPct, "rent-pct", 0, "Rent change in percent")
	forecastCmd.Flags().Float64Var(&flagUtilitiesPct, "utilities-pct", 0, "Utilities change in percent")
	forecastCmd.Flags().Float64Var(&flagMaintenancePct, "maintenance-pct", 0, "Maintenance change in percent")
	forecastCmd.Flags().Float64Var(&flagMarketingPct, "marketing-pct", 0, "Marketing change in percent")
	forecastCmd.Flags().Float64Var(&flagSystemPct, "system-pct", 0, "System/government change in percent")
	forecastCmd.Flags().Float64Var(&flagOtherPct, "other-pct", 0, "Other change in percent")
	forecastCmd.Flags().Float64Var(&flagInflow, "inflow", 0, "Monthly inflow for the cash gap (default from config)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, _ []string) error {
	s := appCfg.ScenarioPercents()
	flags := cmd.Flags()
	for name, dst := range map[string]*float64{
		"rent-pct":        &s.RentPct,
		"utilities-pct":   &s.UtilitiesPct,
		"maintenance-pct": &s.MaintenancePct,
		"marketing-pct":   &s.MarketingPct,
		"system-pct":      &s.SystemPct,
		"other-pct":       &s.OtherPct,
	} {
		if flags.Changed(name) {
			*dst, _ = flags.GetFloat64(name)
		}
	}

	l, a, err := analyze(func(o *pipeline.AnalysisOptions) {
		o.Factors = pipeline.ScenarioFactors(s)
		if flags.Changed("inflow") {
			o.Inflow = flagInflow
		}
	})
	if err != nil {
		return err
	}
	printHeader("Six-Month Forecast", l, a)

	cur := currency()
	rows := make([][]string, 0, len(a.Forecast))
	totals := make([]float64, 0, len(a.Forecast))
	for i, m := range a.Forecast {
		var g model.GapMonth
		if i < len(a.Gap.Months) {
			g = a.Gap.Months[i]
		}
		rows = append(rows, []string{
			m.Key,
			cli.FormatMoney(m.Total, cur),
			string(m.TopCategory),
			cli.FormatMoney(g.Net, cur),
			cli.FormatMoney(g.Cumulative, cur),
			m.Note,
		})
		totals = append(totals, m.Total)
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"Month", "Outflow", "Top", "Net", "Cumulative", "Note"},
		Rows:     rows,
		TextCols: 1,
	}))
	fmt.Println("  " + cli.RenderSparkline(totals))
	fmt.Println()

	gap := "none"
	if a.Gap.HasDeficit() {
		gap = fmt.Sprintf("%s (lowest %s)", a.Gap.FirstDeficitMonth, cli.FormatMoney(a.Gap.MaxDeficit, cur))
	}
	fmt.Print(cli.RenderKV([][2]string{
		{"Run rate", cli.FormatMoney(a.RunRate.Total, cur) + " / month"},
		{"Inflow", cli.FormatMoney(a.Gap.Inflow, cur) + " / month"},
		{"First deficit", gap},
	}))
	fmt.Println()

	for _, line := range a.Insights {
		fmt.Println("  • " + line)
	}
	return nil
}

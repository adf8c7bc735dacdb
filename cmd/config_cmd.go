package cmd

import (
	"fmt"
	"sort"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/config"
	"github.com/badroneai/finance-flow-sub001/internal/pipeline"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg := appCfg

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	ledger := config.GetDefaultLedger(cfg)
	if ledger == "" {
		ledger = "not set"
	}
	fmt.Println("  [General]")
	fmt.Printf("    Default ledger: %s\n", ledger)
	fmt.Printf("    Currency:       %s\n", cfg.General.Currency)
	fmt.Printf("    Database:       %s\n", dbPath())
	fmt.Println()

	fmt.Println("  [Cashflow]")
	fmt.Printf("    Monthly inflow: %s\n", cli.FormatMoney(cfg.Cashflow.MonthlyInflow, cfg.General.Currency))
	fmt.Println()

	fmt.Println("  [Income]")
	fmt.Printf("    Mode: %s\n", cfg.Income.Mode)
	switch cfg.Income.Mode {
	case pipeline.IncomeFixed:
		fmt.Printf("    Fixed: %s\n", cli.FormatAmount(cfg.Income.Fixed))
	case pipeline.IncomeSeasonal:
		fmt.Printf("    Base: %s, peak: %s in months %v\n",
			cli.FormatAmount(cfg.Income.Base), cli.FormatAmount(cfg.Income.Peak), cfg.Income.PeakMonths)
	case pipeline.IncomeManual:
		keys := make([]string, 0, len(cfg.Income.Manual))
		for k := range cfg.Income.Manual {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Printf("    %s: %s\n", k, cli.FormatAmount(cfg.Income.Manual[k]))
		}
	}
	fmt.Println()

	s := cfg.Scenario
	fmt.Println("  [Scenario]")
	fmt.Printf("    rent %+.0f%%  utilities %+.0f%%  maintenance %+.0f%%\n", s.RentPct, s.UtilitiesPct, s.MaintenancePct)
	fmt.Printf("    marketing %+.0f%%  system %+.0f%%  other %+.0f%%\n", s.MarketingPct, s.SystemPct, s.OtherPct)
	fmt.Println()

	fmt.Println("  [Pricing]")
	fmt.Printf("    City: %s\n", config.NormalizeCity(cfg.Pricing.City))
	fmt.Printf("    Size: %s\n", config.NormalizeSize(cfg.Pricing.Size))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `financeflow setup` to reconfigure.")
	return nil
}

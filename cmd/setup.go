package cmd

import (
	"fmt"

	"github.com/badroneai/finance-flow-sub001/internal/config"
	"github.com/badroneai/finance-flow-sub001/internal/tui"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive setup: currency, inflow, region and theme",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	fmt.Println()
	fmt.Println("  Welcome to financeflow!")
	fmt.Println()

	values := tui.SetupValuesFrom(appCfg)
	if err := tui.NewSetupForm(&values).Run(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}

	cfg := values.Apply(appCfg)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	appCfg = cfg

	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `financeflow setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}

package cmd

import (
	"fmt"

	"github.com/badroneai/finance-flow-sub001/internal/config"
	"github.com/badroneai/finance-flow-sub001/internal/tui"
	"github.com/badroneai/finance-flow-sub001/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	c, err := clock()
	if err != nil {
		return err
	}
	id, err := ledgerID()
	if err != nil {
		return err
	}
	st, err := openStore()
	if err != nil {
		return err
	}
	// Opening once up front runs migrations before the dashboard starts.
	_ = st.Close()

	theme.SetActive(appCfg.Appearance.Theme)

	// Force TrueColor so background fills always emit ANSI codes.
	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(tui.Options{
		Currency:    currency(),
		Assumptions: appCfg.Assumptions(),
		Clock:       c,
		NeedSetup:   !config.Exists(),
	}, tui.StoreLoad(dbPath(), id))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

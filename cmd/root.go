// Package cmd implements the financeflow CLI commands.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/badroneai/finance-flow-sub001/internal/config"
	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/pipeline"
	"github.com/badroneai/finance-flow-sub001/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagDBPath string
	flagLedger string
	flagNow    string
	flagQuiet  bool
	flagDebug  bool

	appCfg = config.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "financeflow",
	Short: "Offline cash planning for property ledgers",
	Long: `financeflow tracks recurring obligations and transactions for small
property offices and turns them into a risk radar, a cash plan, a daily
inbox, a compliance score, a six-month forecast, and budget variance.

Everything is computed locally from a SQLite file.

Example:
  financeflow ledger create office --name "Olaya Office" --seed
  financeflow add --title "Office rent" --amount 4000 --due 2025-04-01
  financeflow inbox`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
	RunE:              runRadar,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "SQLite database path (default from config or FINANCEFLOW_DB)")
	rootCmd.PersistentFlags().StringVarP(&flagLedger, "ledger", "l", "", "Ledger id (default from config or FINANCEFLOW_LEDGER)")
	rootCmd.PersistentFlags().StringVar(&flagNow, "now", "", "Evaluate as of this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

func preRun(_ *cobra.Command, _ []string) error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	level := slog.LevelInfo
	if flagDebug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appCfg = cfg
	slog.Debug("config loaded", "path", config.Path(), "exists", config.Exists())
	return nil
}

// clock returns the injected reference clock.
func clock() (model.Clock, error) {
	if flagNow == "" {
		return model.SystemClock{}, nil
	}
	d, ok := model.ParseDate(flagNow)
	if !ok {
		return nil, fmt.Errorf("invalid --now %q: want YYYY-MM-DD", flagNow)
	}
	return model.FixedClock(d), nil
}

func dbPath() string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return config.GetDBPath(appCfg)
}

func ledgerID() (string, error) {
	if flagLedger != "" {
		return flagLedger, nil
	}
	if id := config.GetDefaultLedger(appCfg); id != "" {
		return id, nil
	}
	return "", errors.New("no ledger selected: pass --ledger or set general.default_ledger")
}

func currency() string {
	return appCfg.General.Currency
}

func openStore() (*store.Store, error) {
	path := dbPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	slog.Debug("opening store", "path", path)
	return store.Open(path)
}

// loadLedger reads the selected ledger and its records.
func loadLedger(st *store.Store) (model.Ledger, pipeline.Dataset, error) {
	id, err := ledgerID()
	if err != nil {
		return model.Ledger{}, pipeline.Dataset{}, err
	}
	l, err := st.GetLedger(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return model.Ledger{}, pipeline.Dataset{}, fmt.Errorf("ledger %q not found; create it with `financeflow ledger create %s`", id, id)
		}
		return model.Ledger{}, pipeline.Dataset{}, err
	}
	items, err := st.ListItems(id)
	if err != nil {
		return l, pipeline.Dataset{}, err
	}
	txs, err := st.ListTransactions(id)
	if err != nil {
		return l, pipeline.Dataset{}, err
	}
	slog.Debug("ledger loaded", "ledger", id, "items", len(items), "transactions", len(txs))
	return l, pipeline.Dataset{Items: items, Transactions: txs}, nil
}

// analyze runs the engine over the selected ledger with the configured
// assumptions. opts may adjust them before the run.
func analyze(opts ...func(*pipeline.AnalysisOptions)) (model.Ledger, pipeline.Analysis, error) {
	c, err := clock()
	if err != nil {
		return model.Ledger{}, pipeline.Analysis{}, err
	}
	st, err := openStore()
	if err != nil {
		return model.Ledger{}, pipeline.Analysis{}, err
	}
	defer func() { _ = st.Close() }()

	l, ds, err := loadLedger(st)
	if err != nil {
		return model.Ledger{}, pipeline.Analysis{}, err
	}

	a := appCfg.Assumptions()
	a.Budgets = l.Budgets
	for _, o := range opts {
		o(&a)
	}
	return l, pipeline.Analyze(l.ID, ds, c.Now(), a), nil
}

func progressf(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

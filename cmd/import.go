package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/badroneai/finance-flow-sub001/internal/cli"
	"github.com/badroneai/finance-flow-sub001/internal/model"
	"github.com/badroneai/finance-flow-sub001/internal/source"
	"github.com/badroneai/finance-flow-sub001/internal/store"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file|dir>...",
	Short: "Import ledgers, obligations and transactions from JSONL files",
	Long: `Import JSONL files. Each line carries a top-level "kind" of ledger,
item or transaction. Records without an owner go to the selected ledger,
which is created if it does not exist yet.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	c, err := clock()
	if err != nil {
		return err
	}
	defLedger, _ := ledgerID()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	start := time.Now()
	opts := source.Options{DefaultLedger: defLedger, Now: c.Now(), IDs: model.UUIDGenerator{}}
	batch, err := source.Load(ctx, args, opts, func(current, total int) {
		progressf("\r  Parsing %s", cli.RenderProgressBar(current, total, 30))
	})
	progressf("\n")
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	for _, l := range batch.Ledgers {
		if err := st.SaveLedger(l); err != nil {
			return err
		}
	}
	if err := ensureLedgers(st, batch, c.Now()); err != nil {
		return err
	}
	for _, it := range batch.Items {
		if err := st.SaveItem(it); err != nil {
			return err
		}
	}
	for _, tx := range batch.Transactions {
		if err := st.SaveTransaction(tx); err != nil {
			return err
		}
	}

	fmt.Println(cli.RenderKV([][2]string{
		{"Files", fmt.Sprintf("%d parsed / %d total", batch.ParsedFiles, batch.TotalFiles)},
		{"Ledgers", fmt.Sprint(len(batch.Ledgers))},
		{"Obligations", fmt.Sprint(len(batch.Items))},
		{"Transactions", fmt.Sprint(len(batch.Transactions))},
		{"Skipped lines", fmt.Sprint(batch.Skipped)},
		{"Parse errors", fmt.Sprint(batch.ParseErrors)},
		{"Unreadable files", fmt.Sprint(batch.FileErrors)},
		{"Took", time.Since(start).Round(time.Millisecond).String()},
	}))
	return nil
}

// ensureLedgers creates any ledger that imported records point at but that
// neither the batch nor the store defines.
func ensureLedgers(st *store.Store, batch *source.Batch, now time.Time) error {
	seen := map[string]bool{}
	want := func(id string) error {
		if id == "" || seen[id] {
			return nil
		}
		seen[id] = true
		_, err := st.GetLedger(id)
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		return st.SaveLedger(model.Ledger{ID: id, Name: id, CreatedAt: now})
	}
	for _, it := range batch.Items {
		if err := want(it.LedgerID); err != nil {
			return err
		}
	}
	for _, tx := range batch.Transactions {
		if err := want(tx.LedgerID()); err != nil {
			return err
		}
	}
	return nil
}

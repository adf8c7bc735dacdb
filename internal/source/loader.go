package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync/atomic"

	"github.com/badroneai/finance-flow-sub001/internal/model"
	"golang.org/x/sync/errgroup"
)

// Batch is the merged output of loading several import files.
type Batch struct {
	Ledgers      []model.Ledger
	Items        []model.RecurringItem
	Transactions []model.Transaction
	TotalFiles   int
	ParsedFiles  int
	FileErrors   int
	ParseErrors  int
	Skipped      int
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Expand turns a mix of files and directories into a sorted list of files.
// Directories contribute every *.jsonl file beneath them.
func Expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // skip unreadable entries
			}
			if !d.IsDir() && filepath.Ext(path) == ".jsonl" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", p, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Load parses every file with a bounded worker pool and merges the results
// in file order. A file that cannot be opened is counted, not fatal.
func Load(ctx context.Context, paths []string, opts Options, progressFn ProgressFunc) (*Batch, error) {
	files, err := Expand(paths)
	if err != nil {
		return nil, err
	}

	batch := &Batch{TotalFiles: len(files)}
	if len(files) == 0 {
		return batch, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	results := make([]ParseResult, len(files))
	var processed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = ParseFile(path, opts)
			n := processed.Add(1)
			if progressFn != nil {
				progressFn(int(n), len(files))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range results {
		if r.Err != nil {
			batch.FileErrors++
			continue
		}
		batch.ParsedFiles++
		batch.ParseErrors += r.ParseErrors
		batch.Skipped += r.Skipped
		batch.Ledgers = append(batch.Ledgers, r.Ledgers...)
		batch.Items = append(batch.Items, r.Items...)
		batch.Transactions = append(batch.Transactions, r.Transactions...)
	}
	return batch, nil
}

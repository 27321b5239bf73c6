package core

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/rtps/core/agg"
	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
	"golang.org/x/sync/errgroup"
)

// ExecuteCheck validates every class table and prints the outcome.
// It serves as the main entry point for the 'check' command, returning an
// error when any table fails so CI jobs can gate on the data directory.
func ExecuteCheck(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	result := CheckTables(ctx, cfg, mgr)
	printCheckResult(os.Stdout, result, time.Since(start))
	if !result.Passed {
		return fmt.Errorf("%d of %d class table(s) failed the check", len(result.Failures), result.TotalClasses)
	}
	return nil
}

// CheckTables reads the table of every class and collects all failures.
// Unlike a render it does not stop at the first bad table.
func CheckTables(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) schema.CheckResult {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetTableStore()
	}

	catalog := DefaultCatalog()
	failures := make([]*schema.CheckFailure, len(catalog))
	points := make([]int, len(catalog))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, class := range catalog {
		path := cfg.ResolveInput(class.Key, class.FileName)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				failures[i] = &schema.CheckFailure{Key: class.Key, Path: path, Reason: err.Error()}
				return nil
			}
			table, err := agg.CachedReadTable(store, path)
			if err != nil {
				failures[i] = &schema.CheckFailure{Key: class.Key, Path: path, Reason: err.Error()}
				return nil
			}
			points[i] = schema.Summarize(schema.ClassTable{Class: class, Table: table}).Points
			return nil
		})
	}
	_ = g.Wait()

	result := schema.CheckResult{TotalClasses: len(catalog), Failures: []schema.CheckFailure{}, Empty: []string{}}
	for i, class := range catalog {
		switch {
		case failures[i] != nil:
			result.Failures = append(result.Failures, *failures[i])
		case points[i] == 0:
			result.Empty = append(result.Empty, class.Key)
		}
	}
	result.Passed = len(result.Failures) == 0
	return result
}

// printCheckResult prints the check result in a concise format suitable for CI/CD.
func printCheckResult(w io.Writer, result schema.CheckResult, duration time.Duration) {
	_, _ = fmt.Fprintln(w, "Data Check Results:")
	_, _ = fmt.Fprintf(w, "Checked %d classes in %v\n\n", result.TotalClasses, duration.Round(time.Millisecond))

	if result.Passed {
		_, _ = fmt.Fprintf(w, "✅ All %d class tables loaded\n", result.TotalClasses)
	} else {
		_, _ = fmt.Fprintf(w, "❌ %d class table(s) failed:\n", len(result.Failures))
		for _, f := range result.Failures {
			_, _ = fmt.Fprintf(w, "  - %s (%s): %s\n", f.Key, f.Path, f.Reason)
		}
	}

	if len(result.Empty) > 0 {
		_, _ = fmt.Fprintf(w, "\n⚠️  %d class(es) have no plottable points:\n", len(result.Empty))
		for _, key := range result.Empty {
			_, _ = fmt.Fprintf(w, "  - %s\n", key)
		}
	}
}

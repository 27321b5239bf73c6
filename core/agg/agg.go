// Package agg loads the source-class tables and aggregates their summaries.
package agg

import (
	"context"
	"fmt"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
	"golang.org/x/sync/errgroup"
)

// LoadTables reads the table of every class concurrently, with at most
// cfg.Workers reads in flight. Results keep the order of classes. The first
// failure cancels the reads that have not started and is returned.
func LoadTables(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, classes []schema.SourceClass) ([]schema.ClassTable, error) {
	var store contract.CacheStore
	if mgr != nil {
		store = mgr.GetTableStore()
	}

	tables := make([]schema.ClassTable, len(classes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))

	for i, class := range classes {
		path := cfg.ResolveInput(class.Key, class.FileName)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table, err := CachedReadTable(store, path)
			if err != nil {
				return fmt.Errorf("class %s: %w", class.Key, err)
			}
			// Each goroutine owns a unique index
			tables[i] = schema.ClassTable{Class: class, Table: table}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// Summaries computes the summary of every loaded class, in order.
func Summaries(tables []schema.ClassTable) []schema.ClassSummary {
	summaries := make([]schema.ClassSummary, len(tables))
	for i, ct := range tables {
		summaries[i] = schema.Summarize(ct)
	}
	return summaries
}

// TotalSkipped returns how many points of the summaries log axes cannot show.
func TotalSkipped(summaries []schema.ClassSummary) int {
	total := 0
	for _, s := range summaries {
		total += s.Skipped
	}
	return total
}

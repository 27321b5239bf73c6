package iocache

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/rtps/internal/parquet"
)

// ExecuteRunsExport exports the tracked render runs and class counts to Parquet files.
// Two files are written: <outputFile>.render_runs.parquet and <outputFile>.class_counts.parquet.
func ExecuteRunsExport(w io.Writer, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := Manager.GetRunStore()
	if store == nil {
		return errors.New("run store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no render runs found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total render runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total class records: %d\n", status.TableSizes[classCountsTable])

	renderRuns, err := store.GetAllRenderRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve render runs: %w", err)
	}
	classCounts, err := store.GetAllClassCounts()
	if err != nil {
		return fmt.Errorf("failed to retrieve class counts: %w", err)
	}

	parquetRuns := parquet.ConvertRenderRunRecords(renderRuns)
	parquetCounts := parquet.ConvertClassCountRecords(classCounts)

	runsFile := outputFile + ".render_runs.parquet"
	if err := parquet.WriteRenderRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write render runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d render runs to: %s\n", len(parquetRuns), runsFile)

	countsFile := outputFile + ".class_counts.parquet"
	if err := parquet.WriteClassCountsParquet(parquetCounts, countsFile); err != nil {
		return fmt.Errorf("failed to write class counts: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d class records to: %s\n", len(parquetCounts), countsFile)

	return nil
}

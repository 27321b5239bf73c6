package cmd

import (
	"github.com/huangsam/rtps/core"
	"github.com/spf13/cobra"
)

// exportCmd writes every measurement with its class key.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all measurements tagged with their class.",
	Long: `Load every source-class table and write one row per measurement.

Rows hold the class key, ν·W and L. Text output falls back to CSV.

Examples:
  # Merge all tables into one CSV
  rtps export --output csv --output-file measurements.csv

  # Write a Parquet file for pandas or DuckDB
  rtps export --output parquet --output-file measurements.parquet`,
	PreRunE: sharedSetupWrapper,
	Run:     runWith(core.ExecuteExport, "Cannot export measurements"),
}

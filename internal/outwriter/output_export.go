package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/parquet"
	"github.com/huangsam/rtps/schema"
)

// PrintExportRows writes every measurement tagged with its class.
// The text mode has no table form for raw rows and falls back to CSV.
func PrintExportRows(rows []schema.ExportRow, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteExportRowsParquet(parquet.ConvertExportRows(rows), path)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVExportRows(w, rows)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	}
	return nil
}

// writeCSVExportRows writes rows with the column names of the input tables,
// so a single class can be fed back to the loader.
func writeCSVExportRows(w io.Writer, rows []schema.ExportRow) error {
	return writeCSVWithHeader(w, []string{"class", schema.VWColumn, schema.LColumn}, func(cw *csv.Writer) error {
		for _, r := range rows {
			record := []string{
				r.Class,
				strconv.FormatFloat(r.VW, 'g', -1, 64),
				strconv.FormatFloat(r.L, 'g', -1, 64),
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
		return nil
	})
}

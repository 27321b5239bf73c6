// Package parquet provides data structures and functions for reading measurement
// tables from, and exporting rtps data to, Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/rtps/schema"
	"github.com/parquet-go/parquet-go"
)

// Column names of a Parquet measurement table.
const (
	VWColumn = "vw_ghz_s"
	LColumn  = "l_jy_kpc2"
)

// Measurement is one row of a Parquet measurement table.
type Measurement struct {
	// VW is the radio frequency (GHz) times transient duration (s)
	VW float64 `parquet:"vw_ghz_s,snappy"`

	// L is the spectral pseudo-luminosity (Jy kpc^2)
	L float64 `parquet:"l_jy_kpc2,snappy"`
}

// ExportRow is a measurement tagged with its source class.
type ExportRow struct {
	Class string  `parquet:"class,dict,snappy"`
	VW    float64 `parquet:"vw_ghz_s,snappy"`
	L     float64 `parquet:"l_jy_kpc2,snappy"`
}

// RenderRun represents a single render run with metadata.
// This struct maps to the rtps_render_runs database table.
type RenderRun struct {
	// RunID is the UUID of this render run
	RunID string `parquet:"run_id,snappy"`

	// StartTime is when the render began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the render completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// DurationMs is the duration of the run in milliseconds (nullable)
	DurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// TotalPoints is the number of measurements loaded (nullable)
	TotalPoints *int64 `parquet:"total_points,optional,snappy"`

	// OutputFiles contains the JSON-encoded list of written images (nullable)
	OutputFiles *string `parquet:"output_files,optional,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// ClassCount represents the loaded summary of one class in a render run.
// This struct maps to the rtps_class_counts database table.
type ClassCount struct {
	RunID   string  `parquet:"run_id,snappy"`
	Class   string  `parquet:"class_key,dict,snappy"`
	Points  int64   `parquet:"points,snappy"`
	Skipped int64   `parquet:"skipped,snappy"`
	MinVW   float64 `parquet:"min_vw,snappy"`
	MaxVW   float64 `parquet:"max_vw,snappy"`
	MinL    float64 `parquet:"min_l,snappy"`
	MaxL    float64 `parquet:"max_l,snappy"`
}

// Conversion is the outcome of one luminosity conversion.
type Conversion struct {
	Kind   string  `parquet:"kind,dict,snappy"`
	Input  float64 `parquet:"input,snappy"`
	TB     float64 `parquet:"tb_k,snappy"`
	Output float64 `parquet:"output,snappy"`
}

// ErrMissingColumn is returned when a measurement table lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// writeParquet writes rows of any struct type to a Parquet file.
// The schema is automatically derived from the struct tags of T.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		_ = file.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// WriteMeasurementsParquet writes a measurement table to a Parquet file.
func WriteMeasurementsParquet(data []Measurement, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteExportRowsParquet writes class-tagged measurements to a Parquet file.
func WriteExportRowsParquet(data []ExportRow, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteRenderRunsParquet writes a slice of RenderRun structs to a Parquet file.
func WriteRenderRunsParquet(data []RenderRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteConversionsParquet writes conversion results to a Parquet file.
func WriteConversionsParquet(data []Conversion, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteClassCountsParquet writes a slice of ClassCount structs to a Parquet file.
func WriteClassCountsParquet(data []ClassCount, outputPath string) error {
	return writeParquet(data, outputPath)
}

// ReadMeasurementsParquet reads the vW and L columns of a Parquet table, in row order.
// Other columns are ignored. The columns may be optional, but null cells and
// non-numeric columns are rejected.
func ReadMeasurementsParquet(path string) ([]schema.Measurement, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("not a parquet file: %w", err)
	}

	reader := parquet.NewReader(pf)
	defer func() { _ = reader.Close() }()

	vwIndex, err := numericColumn(reader.Schema(), VWColumn)
	if err != nil {
		return nil, err
	}
	lIndex, err := numericColumn(reader.Schema(), LColumn)
	if err != nil {
		return nil, err
	}

	out := make([]schema.Measurement, 0, reader.NumRows())
	rows := make([]parquet.Row, 128)
	line := 0
	for {
		n, readErr := reader.ReadRows(rows)
		for _, row := range rows[:n] {
			line++
			var m schema.Measurement
			var haveVW, haveL bool
			for _, v := range row {
				switch v.Column() {
				case vwIndex:
					m.VW, haveVW = numericValue(v)
				case lIndex:
					m.L, haveL = numericValue(v)
				}
			}
			if !haveVW || !haveL {
				return nil, fmt.Errorf("row %d: null or non-numeric cell", line)
			}
			out = append(out, m)
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read rows: %w", readErr)
		}
	}
	return out, nil
}

// numericColumn returns the leaf index of a top-level numeric column.
func numericColumn(s *parquet.Schema, name string) (int, error) {
	leaf, ok := s.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrMissingColumn, name)
	}
	switch leaf.Node.Type().Kind() {
	case parquet.Double, parquet.Float, parquet.Int32, parquet.Int64:
		return leaf.ColumnIndex, nil
	default:
		return 0, fmt.Errorf("column %q is not numeric", name)
	}
}

// numericValue converts a cell to float64, reporting false for nulls.
func numericValue(v parquet.Value) (float64, bool) {
	if v.IsNull() {
		return 0, false
	}
	switch v.Kind() {
	case parquet.Double:
		return v.Double(), true
	case parquet.Float:
		return float64(v.Float()), true
	case parquet.Int32:
		return float64(v.Int32()), true
	case parquet.Int64:
		return float64(v.Int64()), true
	default:
		return 0, false
	}
}

// ConvertMeasurements converts a loaded table to Parquet rows.
func ConvertMeasurements(table schema.MeasurementTable) []Measurement {
	out := make([]Measurement, len(table.Rows))
	for i, r := range table.Rows {
		out[i] = Measurement{VW: r.VW, L: r.L}
	}
	return out
}

// ConvertExportRows converts class-tagged measurements to Parquet rows.
func ConvertExportRows(rows []schema.ExportRow) []ExportRow {
	out := make([]ExportRow, len(rows))
	for i, r := range rows {
		out[i] = ExportRow(r)
	}
	return out
}

// ConvertRenderRunRecords converts schema.RenderRunRecord slices to RenderRun slices.
func ConvertRenderRunRecords(records []schema.RenderRunRecord) []RenderRun {
	out := make([]RenderRun, len(records))
	for i, r := range records {
		out[i] = RenderRun{
			RunID:        r.RunID,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			DurationMs:   r.DurationMs,
			TotalPoints:  r.TotalPoints,
			OutputFiles:  r.OutputFiles,
			ConfigParams: r.ConfigParams,
		}
	}
	return out
}

// ConvertClassCountRecords converts schema.ClassCountRecord slices to ClassCount slices.
func ConvertClassCountRecords(records []schema.ClassCountRecord) []ClassCount {
	out := make([]ClassCount, len(records))
	for i, r := range records {
		out[i] = ClassCount(r)
	}
	return out
}

// ConvertClassSummaries converts class summaries to Parquet rows outside of any run.
func ConvertClassSummaries(summaries []schema.ClassSummary) []ClassCount {
	out := make([]ClassCount, len(summaries))
	for i, s := range summaries {
		out[i] = ClassCount{
			Class:   s.Key,
			Points:  int64(s.Points),
			Skipped: int64(s.Skipped),
			MinVW:   s.MinVW,
			MaxVW:   s.MaxVW,
			MinL:    s.MinL,
			MaxL:    s.MaxL,
		}
	}
	return out
}

// ConvertConversions converts conversion results to Parquet rows.
func ConvertConversions(results []schema.ConversionResult) []Conversion {
	out := make([]Conversion, len(results))
	for i, r := range results {
		out[i] = Conversion{Kind: string(r.Kind), Input: r.Input, TB: r.TB, Output: r.Output}
	}
	return out
}

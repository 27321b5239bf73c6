// Package table reads source-class measurement tables from CSV and Parquet files.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/parquet"
	"github.com/huangsam/rtps/schema"
)

// ParquetExt marks tables that are read as Parquet instead of CSV.
const ParquetExt = ".parquet"

// utf8BOM is stripped from the first header cell when spreadsheets add it.
const utf8BOM = "\ufeff"

// Read loads the table at path. Files ending in .parquet are read as Parquet,
// everything else as comma-separated text with a header row.
func Read(path string) (schema.MeasurementTable, error) {
	if _, err := Stat(path); err != nil {
		return schema.MeasurementTable{}, err
	}

	var rows []schema.Measurement
	var err error
	if IsParquet(path) {
		rows, err = parquet.ReadMeasurementsParquet(path)
	} else {
		rows, err = readCSVFile(path)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return schema.MeasurementTable{}, fmt.Errorf("%w: %s", contract.ErrMissingFile, path)
		}
		return schema.MeasurementTable{}, fmt.Errorf("%w: %s: %w", contract.ErrMalformedTable, path, err)
	}
	if rows == nil {
		rows = []schema.Measurement{}
	}
	return schema.MeasurementTable{Path: path, Rows: rows}, nil
}

// Stat returns the file info of an input table, mapping absence to ErrMissingFile.
func Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", contract.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", contract.ErrMissingFile, path)
	}
	return info, nil
}

// IsParquet reports whether path names a Parquet table.
func IsParquet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ParquetExt)
}

// readCSVFile opens and parses a CSV table.
func readCSVFile(path string) ([]schema.Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ParseCSV(f)
}

// ParseCSV parses a comma-separated table. The header must name the vW and L
// columns; other columns are ignored and column order is free. Every data row
// must have as many cells as the header and both required cells must be numbers.
func ParseCSV(r io.Reader) ([]schema.Measurement, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty file, expected a header row")
	}
	if err != nil {
		return nil, err
	}

	vwIndex, lIndex, err := headerIndexes(header)
	if err != nil {
		return nil, err
	}

	rows := []schema.Measurement{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if isBlank(record) {
			continue
		}

		vw, err := parseCell(record[vwIndex])
		if err != nil {
			return nil, fmt.Errorf("line %d, column %q: %w", line, schema.VWColumn, err)
		}
		l, err := parseCell(record[lIndex])
		if err != nil {
			return nil, fmt.Errorf("line %d, column %q: %w", line, schema.LColumn, err)
		}
		rows = append(rows, schema.Measurement{VW: vw, L: l})
	}
	return rows, nil
}

// headerIndexes locates the required columns in a header row.
func headerIndexes(header []string) (int, int, error) {
	vwIndex, lIndex := -1, -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		switch strings.TrimSpace(name) {
		case schema.VWColumn:
			vwIndex = i
		case schema.LColumn:
			lIndex = i
		}
	}
	var missing []string
	if vwIndex < 0 {
		missing = append(missing, schema.VWColumn)
	}
	if lIndex < 0 {
		missing = append(missing, schema.LColumn)
	}
	if len(missing) > 0 {
		return 0, 0, fmt.Errorf("missing column(s) %q", missing)
	}
	return vwIndex, lIndex, nil
}

// parseCell parses one numeric cell. Empty cells are rejected.
func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0, errors.New("empty cell")
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("non-numeric value %q", cell)
	}
	return v, nil
}

// isBlank reports whether a record only holds whitespace, as trailing lines often do.
func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

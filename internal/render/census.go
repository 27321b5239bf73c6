package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Census chart geometry in pixels.
const (
	CensusWidth  = 1200
	CensusHeight = 600
)

// ErrEmptyCensus is returned when no class has any measurement to count.
var ErrEmptyCensus = errors.New("no measurements to chart")

// censusChart builds a bar chart with one bar per class in catalog order.
func censusChart(tables []schema.ClassTable) (chart.BarChart, error) {
	bars := make([]chart.Value, 0, len(tables))
	maxCount := 0
	for _, ct := range tables {
		n := ct.Table.Len()
		maxCount = max(maxCount, n)

		clr, err := ParseColor(ct.Class.Color, ct.Class.Alpha)
		if err != nil {
			return chart.BarChart{}, fmt.Errorf("class %s: %w", ct.Class.Key, err)
		}
		fill := drawing.Color{R: clr.R, G: clr.G, B: clr.B, A: clr.A}
		bars = append(bars, chart.Value{
			Label: ct.Class.Key,
			Value: float64(n),
			Style: chart.Style{FillColor: fill, StrokeColor: fill, StrokeWidth: 1},
		})
	}
	if maxCount == 0 {
		return chart.BarChart{}, ErrEmptyCensus
	}

	return chart.BarChart{
		Title:    "Measurements per source class",
		Width:    CensusWidth,
		Height:   CensusHeight,
		BarWidth: 50,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Bottom: 60},
		},
		XAxis: chart.Style{TextRotationDegrees: 45},
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
			ValueFormatter: chart.IntValueFormatter,
		},
		Bars: bars,
	}, nil
}

// WriteCensus encodes the census chart as PNG or SVG, chosen by extension.
func WriteCensus(w io.Writer, tables []schema.ClassTable, ext string) error {
	var provider chart.RendererProvider
	switch schema.NormalizeFormat(ext) {
	case ".png":
		provider = chart.PNG
	case ".svg":
		provider = chart.SVG
	default:
		return fmt.Errorf("%w: unsupported census format %q", contract.ErrInvalidConfig, ext)
	}

	bc, err := censusChart(tables)
	if err != nil {
		return err
	}
	if err := bc.Render(provider, w); err != nil {
		return fmt.Errorf("%w: census: %w", contract.ErrOutputWrite, err)
	}
	return nil
}

// SaveCensus writes the census chart to path, creating its directory.
// A failed render leaves no file behind.
func SaveCensus(path string, tables []schema.ClassTable) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %w", contract.ErrOutputWrite, filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", contract.ErrOutputWrite, path, err)
	}
	if err := WriteCensus(f, tables, filepath.Ext(path)); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %s: %w", contract.ErrOutputWrite, path, err)
	}
	return nil
}

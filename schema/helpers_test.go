package schema

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{".png", ".png"},
		{"pdf", ".pdf"},
		{" .SVG ", ".svg"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFormat(tt.in))
		})
	}
}

func TestSummarize(t *testing.T) {
	ct := ClassTable{
		Class: SourceClass{Key: "rrats", Label: "RRATs"},
		Table: MeasurementTable{
			Path: "Data/rrats.csv",
			Rows: []Measurement{
				{VW: 1e-3, L: 50},
				{VW: 0, L: 10}, // not plottable
				{VW: 2e-2, L: 5},
				{VW: 5e-3, L: -1}, // not plottable
			},
		},
	}

	s := Summarize(ct)
	assert.Equal(t, "rrats", s.Key)
	assert.Equal(t, "Data/rrats.csv", s.Path)
	assert.Equal(t, 4, s.Points)
	assert.Equal(t, 2, s.Skipped)
	assert.Equal(t, 1e-3, s.MinVW)
	assert.Equal(t, 2e-2, s.MaxVW)
	assert.Equal(t, 5.0, s.MinL)
	assert.Equal(t, 50.0, s.MaxL)
}

func TestSummarizeEmptyTable(t *testing.T) {
	s := Summarize(ClassTable{Class: SourceClass{Key: "novae"}})
	assert.Equal(t, 0, s.Points)
	assert.True(t, math.IsNaN(s.MinVW))
	assert.True(t, math.IsNaN(s.MaxL))
}

func TestFlattenAndTotal(t *testing.T) {
	tables := []ClassTable{
		{Class: SourceClass{Key: "a"}, Table: MeasurementTable{Rows: []Measurement{{VW: 1, L: 2}}}},
		{Class: SourceClass{Key: "b"}, Table: MeasurementTable{Rows: []Measurement{{VW: 3, L: 4}, {VW: 5, L: 6}}}},
	}

	rows := Flatten(tables)
	assert.Equal(t, []ExportRow{
		{Class: "a", VW: 1, L: 2},
		{Class: "b", VW: 3, L: 4},
		{Class: "b", VW: 5, L: 6},
	}, rows)
	assert.Equal(t, 3, TotalPoints(tables))
}

func TestMeasurementTableColumns(t *testing.T) {
	tbl := MeasurementTable{Rows: []Measurement{{VW: 1e-5, L: 10}, {VW: 1e-3, L: 1000}}}
	vw, l := tbl.Columns()
	assert.Equal(t, []float64{1e-5, 1e-3}, vw)
	assert.Equal(t, []float64{10, 1000}, l)
}

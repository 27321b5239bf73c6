// Package schema has configs, models and global variables for all parts of rtps.
package schema

import "time"

// Measurement is one row of a source-class table.
type Measurement struct {
	VW float64 `json:"vw"` // Radio frequency (GHz) times transient duration (s)
	L  float64 `json:"l"`  // Spectral pseudo-luminosity (Jy kpc^2)
}

// MeasurementTable is the ordered, immutable content of one input table.
type MeasurementTable struct {
	Path string        `json:"path"`
	Rows []Measurement `json:"rows"`
}

// Len returns the number of records in the table.
func (t MeasurementTable) Len() int {
	return len(t.Rows)
}

// Columns splits the table into its vW and L columns, preserving order.
func (t MeasurementTable) Columns() (vw, l []float64) {
	vw = make([]float64, len(t.Rows))
	l = make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		vw[i] = r.VW
		l[i] = r.L
	}
	return vw, l
}

// TextLabel is a piece of annotation text anchored at a data coordinate.
type TextLabel struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation,omitempty"` // Degrees, counter-clockwise
	Size     float64 `json:"size,omitempty"`     // Points
}

// SourceClass is a named category of radio transient backed by one table.
type SourceClass struct {
	Key      string    `json:"key"`   // Config key, e.g. "pulsars"
	Label    string    `json:"label"` // Display name
	FileName string    `json:"file"`  // Table file name relative to the data directory
	Color    string    `json:"color"` // Named color or #RRGGBB
	Alpha    float64   `json:"alpha"` // Marker opacity (0-1)
	Text     TextLabel `json:"text"`  // Hand-placed annotation
}

// PointSource is a single source whose coordinates are literal constants.
type PointSource struct {
	Key   string      `json:"key"`
	Point Measurement `json:"point"`
	Color string      `json:"color"`
	Alpha float64     `json:"alpha"`
	Text  TextLabel   `json:"text"`
}

// ClassTable pairs a source class with its loaded table.
type ClassTable struct {
	Class SourceClass
	Table MeasurementTable
}

// ClassSummary describes the loaded content of a source class.
type ClassSummary struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Path    string  `json:"path"`
	Points  int     `json:"points"`
	Skipped int     `json:"skipped"` // Non-positive points that log axes cannot show
	MinVW   float64 `json:"min_vw"`
	MaxVW   float64 `json:"max_vw"`
	MinL    float64 `json:"min_l"`
	MaxL    float64 `json:"max_l"`
}

// ExportRow is a measurement tagged with its source class, used for exports.
type ExportRow struct {
	Class string  `json:"class"`
	VW    float64 `json:"vw"`
	L     float64 `json:"l"`
}

// ConversionResult is the outcome of one luminosity conversion.
type ConversionResult struct {
	Kind   ConversionKind `json:"kind"`
	Input  float64        `json:"input"`        // vW (GHz s) for brightness temperature, L otherwise
	TB     float64        `json:"tb,omitempty"` // Brightness temperature (K), brightness temperature only
	Output float64        `json:"output"`
}

// RenderResult describes a finished render.
type RenderResult struct {
	RunID    string         `json:"run_id,omitempty"`
	Files    []string       `json:"files"`
	Preview  string         `json:"preview,omitempty"` // File opened by show
	Points   int            `json:"points"`
	Skipped  int            `json:"skipped"`
	Classes  []ClassSummary `json:"-"`
	Duration time.Duration  `json:"duration_ns"`
}

// CheckFailure is a class table that cannot be loaded.
type CheckFailure struct {
	Key    string `json:"key"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// CheckResult is the outcome of validating every class table.
type CheckResult struct {
	Passed       bool           `json:"passed"`
	TotalClasses int            `json:"total_classes"`
	Failures     []CheckFailure `json:"failures"`
	Empty        []string       `json:"empty"` // Keys of loadable classes without plottable points
}

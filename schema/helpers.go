package schema

import (
	"math"
	"strings"
)

// NormalizeFormat lower-cases an image extension and ensures a leading dot.
func NormalizeFormat(format string) string {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		return ""
	}
	if !strings.HasPrefix(f, ".") {
		f = "." + f
	}
	return f
}

// Summarize computes the summary of one loaded source class.
// Ranges only consider points that a log-log plot can show.
func Summarize(ct ClassTable) ClassSummary {
	s := ClassSummary{
		Key:    ct.Class.Key,
		Label:  ct.Class.Label,
		Path:   ct.Table.Path,
		Points: ct.Table.Len(),
		MinVW:  math.NaN(),
		MaxVW:  math.NaN(),
		MinL:   math.NaN(),
		MaxL:   math.NaN(),
	}
	first := true
	for _, r := range ct.Table.Rows {
		if !(r.VW > 0 && r.L > 0) || math.IsInf(r.VW, 0) || math.IsInf(r.L, 0) {
			s.Skipped++
			continue
		}
		if first {
			s.MinVW, s.MaxVW, s.MinL, s.MaxL = r.VW, r.VW, r.L, r.L
			first = false
			continue
		}
		s.MinVW = math.Min(s.MinVW, r.VW)
		s.MaxVW = math.Max(s.MaxVW, r.VW)
		s.MinL = math.Min(s.MinL, r.L)
		s.MaxL = math.Max(s.MaxL, r.L)
	}
	return s
}

// Flatten tags every measurement with its class key, in catalog then row order.
func Flatten(tables []ClassTable) []ExportRow {
	var rows []ExportRow
	for _, ct := range tables {
		for _, r := range ct.Table.Rows {
			rows = append(rows, ExportRow{Class: ct.Class.Key, VW: r.VW, L: r.L})
		}
	}
	return rows
}

// TotalPoints counts the records across all tables.
func TotalPoints(tables []ClassTable) int {
	n := 0
	for _, ct := range tables {
		n += ct.Table.Len()
	}
	return n
}

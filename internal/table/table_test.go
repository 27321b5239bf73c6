package table

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/parquet"
	"github.com/huangsam/rtps/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFile creates a file with the given content inside a temp dir.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead_CSV(t *testing.T) {
	path := writeFile(t, "pulsars.csv", "vW (GHz s),L (Jy kpc^2)\n1e-5,10.0\n1e-3,1000.0\n")

	table, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, path, table.Path)
	assert.Equal(t, []schema.Measurement{{VW: 1e-5, L: 10.0}, {VW: 1e-3, L: 1000.0}}, table.Rows)
}

func TestRead_HeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", "vW (GHz s),L (Jy kpc^2)\n")

	table, err := Read(path)
	require.NoError(t, err)
	assert.NotNil(t, table.Rows)
	assert.Equal(t, 0, table.Len())
}

func TestRead_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	_, err := Read(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrMissingFile)
	assert.Contains(t, err.Error(), path)
}

func TestRead_Directory(t *testing.T) {
	_, err := Read(t.TempDir())
	assert.ErrorIs(t, err, contract.ErrMissingFile)
}

func TestRead_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"empty file", "", "header"},
		{"missing L column", "vW (GHz s),flux\n1,2\n", "L (Jy kpc^2)"},
		{"missing both columns", "a,b\n1,2\n", "vW (GHz s)"},
		{"non-numeric cell", "vW (GHz s),L (Jy kpc^2)\n1e-5,abc\n", "abc"},
		{"empty cell", "vW (GHz s),L (Jy kpc^2)\n,10\n", "empty cell"},
		{"ragged row", "vW (GHz s),L (Jy kpc^2)\n1e-5,10,3\n", "fields"},
		{"short row", "vW (GHz s),L (Jy kpc^2)\n1e-5\n", "fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.csv", tt.content)
			_, err := Read(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, contract.ErrMalformedTable)
			assert.Contains(t, err.Error(), path)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []schema.Measurement
	}{
		{
			name:    "reordered columns with extras",
			content: "Name,L (Jy kpc^2),Ref,vW (GHz s)\nB0531+21,5.5,x,1e-3\nJ1745,7,y,2\n",
			want:    []schema.Measurement{{VW: 1e-3, L: 5.5}, {VW: 2, L: 7}},
		},
		{
			name:    "byte order mark and padded header",
			content: "\ufeffvW (GHz s) , L (Jy kpc^2)\n1,2\n",
			want:    []schema.Measurement{{VW: 1, L: 2}},
		},
		{
			name:    "CRLF line endings",
			content: "vW (GHz s),L (Jy kpc^2)\r\n3,4\r\n",
			want:    []schema.Measurement{{VW: 3, L: 4}},
		},
		{
			name:    "blank trailing lines",
			content: "vW (GHz s),L (Jy kpc^2)\n3,4\n\n\n",
			want:    []schema.Measurement{{VW: 3, L: 4}},
		},
		{
			name:    "non-positive values are kept",
			content: "vW (GHz s),L (Jy kpc^2)\n0,-1\n",
			want:    []schema.Measurement{{VW: 0, L: -1}},
		},
		{
			name:    "quoted numbers",
			content: "vW (GHz s),L (Jy kpc^2)\n\"1.5E+02\", 2.0e-10\n",
			want:    []schema.Measurement{{VW: 150, L: 2e-10}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCSV(strings.NewReader(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_Parquet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frb.parquet")
	want := schema.MeasurementTable{Rows: []schema.Measurement{{VW: 1e-5, L: 10}, {VW: 1e-3, L: 1000}}}
	require.NoError(t, parquet.WriteMeasurementsParquet(parquet.ConvertMeasurements(want), path))

	table, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, want.Rows, table.Rows)
}

func TestRead_BadParquet(t *testing.T) {
	path := writeFile(t, "frb.parquet", "vW (GHz s),L (Jy kpc^2)\n1,2\n")

	_, err := Read(path)
	assert.ErrorIs(t, err, contract.ErrMalformedTable)
}

func TestIsParquet(t *testing.T) {
	assert.True(t, IsParquet("a/b.parquet"))
	assert.True(t, IsParquet("B.PARQUET"))
	assert.False(t, IsParquet("b.csv"))
	assert.False(t, IsParquet("parquet"))
}

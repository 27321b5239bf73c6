package outwriter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{
			name:      "precision 2",
			precision: 2,
			value:     3.14159,
			expected:  "3.14e+00",
		},
		{
			name:      "precision 0",
			precision: 0,
			value:     2.4e14,
			expected:  "2e+14",
		},
		{
			name:      "tiny value",
			precision: 3,
			value:     1.2345e-10,
			expected:  "1.234e-10",
		},
		{
			name:      "empty range",
			precision: 3,
			value:     math.NaN(),
			expected:  "-",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, map[string]any{"name": "test", "value": 42}))
	assert.Equal(t, "{\n  \"name\": \"test\",\n  \"value\": 42\n}\n", buf.String())

	err := writeJSON(&buf, math.Inf(1))
	assert.Error(t, err)
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"a", "b"}, func(w *csv.Writer) error {
		return w.Write([]string{"1", "x,y"})
	})
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,\"x,y\"\n", buf.String())

	err = writeCSVWithHeader(&bytes.Buffer{}, []string{"a"}, func(*csv.Writer) error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestWriteWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	err := writeWithFile(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	}, "Wrote text")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	err = writeWithFile(filepath.Join(t.TempDir(), "missing", "out.txt"), func(io.Writer) error { return nil }, "x")
	assert.Error(t, err)
}

func TestWriteParquetFile(t *testing.T) {
	err := writeParquetFile("", func(string) error { return nil }, "x")
	assert.Error(t, err)

	called := ""
	require.NoError(t, writeParquetFile("a.parquet", func(p string) error {
		called = p
		return nil
	}, "x"))
	assert.Equal(t, "a.parquet", called)

	boom := errors.New("boom")
	assert.ErrorIs(t, writeParquetFile("a.parquet", func(string) error { return boom }, "x"), boom)
}

func TestJSONFloat(t *testing.T) {
	assert.Nil(t, jsonFloat(math.NaN()))
	v := jsonFloat(2.5)
	require.NotNil(t, v)
	assert.Equal(t, 2.5, *v)
}

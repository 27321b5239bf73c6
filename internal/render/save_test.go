package render

import (
	"bytes"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave(t *testing.T) {
	fig, err := NewFigure(sampleTables(), samplePointSources())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "Plots")
	paths, err := Save(fig, 10, 8, dir, "rtps", []string{".png", ".pdf"})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "rtps.png"), filepath.Join(dir, "rtps.pdf")}, paths)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	png, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "png signature")

	pdf, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "pdf signature")
}

func TestSaveVectorFormats(t *testing.T) {
	fig, err := NewFigure(sampleTables(), nil)
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := Save(fig, 5, 4, dir, "phase", []string{".svg", ".eps"})
	require.NoError(t, err)
	require.Len(t, paths, 2)

	svg, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestSaveEveryFormat(t *testing.T) {
	fig, err := NewFigure(sampleTables(), samplePointSources())
	require.NoError(t, err)

	formats := slices.Sorted(maps.Keys(schema.ValidImageFormats))
	dir := filepath.Join(t.TempDir(), "a", "b")
	paths, err := Save(fig, 6, 5, dir, "rtps", formats)
	require.NoError(t, err)
	require.Len(t, paths, len(formats))

	for i, path := range paths {
		assert.Equal(t, formats[i], filepath.Ext(path))
		info, err := os.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}
}

func TestSaveInvalidFormat(t *testing.T) {
	fig, err := NewFigure(nil, nil)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "never")
	_, err = Save(fig, 10, 8, dir, "rtps", []string{".png", ".bmp"})
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrOutputWrite)

	// Encoding happens before the directory is created
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveNoFormats(t *testing.T) {
	fig, err := NewFigure(nil, nil)
	require.NoError(t, err)

	_, err = Save(fig, 10, 8, t.TempDir(), "rtps", nil)
	assert.ErrorIs(t, err, contract.ErrOutputWrite)
}

func TestSaveRemovesPartialOutput(t *testing.T) {
	fig, err := NewFigure(nil, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	// A directory in place of the second file makes its write fail
	require.NoError(t, os.Mkdir(filepath.Join(dir, "rtps.pdf"), 0o755))

	_, err = Save(fig, 4, 3, dir, "rtps", []string{".png", ".pdf"})
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrOutputWrite)

	_, statErr := os.Stat(filepath.Join(dir, "rtps.png"))
	assert.True(t, os.IsNotExist(statErr), "png from the failed run must be removed")
}

func TestSaveUncreatableDir(t *testing.T) {
	fig, err := NewFigure(nil, nil)
	require.NoError(t, err)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err = Save(fig, 4, 3, filepath.Join(blocker, "Plots"), "rtps", []string{".png"})
	assert.ErrorIs(t, err, contract.ErrOutputWrite)
}

func TestViewerCommand(t *testing.T) {
	tests := []struct {
		goos     string
		expected []string
	}{
		{"linux", []string{"xdg-open", "a.png"}},
		{"freebsd", []string{"xdg-open", "a.png"}},
		{"darwin", []string{"open", "a.png"}},
		{"windows", []string{"rundll32", "url.dll,FileProtocolHandler", "a.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			cmd := viewerCommand(tt.goos, "a.png")
			assert.Equal(t, tt.expected, cmd.Args)
		})
	}
}

package core

import (
	"testing"

	"github.com/huangsam/rtps/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	require.Len(t, catalog, 16)

	keys := make(map[string]struct{}, len(catalog))
	files := make(map[string]struct{}, len(catalog))
	for _, c := range catalog {
		t.Run(c.Key, func(t *testing.T) {
			_, err := render.ParseColor(c.Color, c.Alpha)
			assert.NoError(t, err)
			assert.Greater(t, c.Alpha, 0.0)
			assert.LessOrEqual(t, c.Alpha, 1.0)
			assert.NotEmpty(t, c.Label)
			assert.Equal(t, c.Key+".csv", c.FileName)

			// Labels sit inside the fixed axis ranges
			assert.GreaterOrEqual(t, c.Text.X, render.XMin)
			assert.LessOrEqual(t, c.Text.X, render.XMax)
			assert.GreaterOrEqual(t, c.Text.Y, render.YMin)
			assert.LessOrEqual(t, c.Text.Y, render.YMax)
		})
		keys[c.Key] = struct{}{}
		files[c.FileName] = struct{}{}
	}
	assert.Len(t, keys, len(catalog), "keys are unique")
	assert.Len(t, files, len(catalog), "files are unique")
}

func TestDefaultCatalogIsACopy(t *testing.T) {
	a := DefaultCatalog()
	a[0].Color = "changed"
	assert.NotEqual(t, "changed", DefaultCatalog()[0].Color)
}

func TestDefaultPointSources(t *testing.T) {
	sources := DefaultPointSources()
	require.Len(t, sources, 5)
	for _, s := range sources {
		_, err := render.ParseColor(s.Color, s.Alpha)
		assert.NoError(t, err, s.Key)
		assert.Positive(t, s.Point.VW, s.Key)
		assert.Positive(t, s.Point.L, s.Key)
		assert.GreaterOrEqual(t, s.Text.X, render.XMin, s.Key)
		assert.LessOrEqual(t, s.Text.X, render.XMax, s.Key)
		assert.GreaterOrEqual(t, s.Text.Y, render.YMin, s.Key)
		assert.LessOrEqual(t, s.Text.Y, render.YMax, s.Key)
	}
}

func TestClassKeys(t *testing.T) {
	keys := ClassKeys()
	assert.Equal(t, "pulsars", keys[0])
	assert.Equal(t, "magcv", keys[len(keys)-1])
	assert.Len(t, keys, 16)
}

package core

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/iocache"
	"github.com/huangsam/rtps/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// writeDataDir writes a small table for every class of the default catalog.
// Each table holds two plottable rows and one row log axes cannot show.
func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for i, c := range DefaultCatalog() {
		content := fmt.Sprintf("vW (GHz s),L (Jy kpc^2)\n1e-%d,1e%d\n2e-%d,3e%d\n0,5\n", i%9, i%12, i%9, i%12)
		require.NoError(t, os.WriteFile(filepath.Join(dir, c.FileName), []byte(content), 0o644))
	}
	return dir
}

// testConfig returns a validated-looking config rooted at dataDir.
func testConfig(dataDir, outputDir string) *contract.Config {
	return &contract.Config{
		DataDir:      dataDir,
		Save:         true,
		Basename:     "rtps",
		Formats:      []string{".png", ".pdf"},
		OutputDir:    outputDir,
		FigWidth:     contract.DefaultFigWidth,
		FigHeight:    contract.DefaultFigHeight,
		Workers:      4,
		Precision:    3,
		Output:       schema.TextOut,
		CacheBackend: schema.NoneBackend,
		RunsBackend:  schema.NoneBackend,
	}
}

// untrackedManager returns a mock manager without any store.
func untrackedManager() *iocache.MockCacheManager {
	mgr := &iocache.MockCacheManager{}
	mgr.On("GetTableStore").Return(nil)
	mgr.On("GetRunStore").Return(nil)
	return mgr
}

// TestRenderPhaseSpace tests a full render without run tracking.
func TestRenderPhaseSpace(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "Plots")
	cfg := testConfig(writeDataDir(t), outDir)
	mgr := untrackedManager()

	result, err := RenderPhaseSpace(WithoutHeader(context.Background()), cfg, mgr)
	require.NoError(t, err)

	assert.Equal(t, []string{filepath.Join(outDir, "rtps.png"), filepath.Join(outDir, "rtps.pdf")}, result.Files)
	assert.Equal(t, result.Files[0], result.Preview)
	assert.Equal(t, 2*len(DefaultCatalog()), result.Points)
	assert.Equal(t, len(DefaultCatalog()), result.Skipped)
	assert.Len(t, result.Classes, len(DefaultCatalog()))
	assert.Empty(t, result.RunID)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
	mgr.AssertExpectations(t)
}

// TestRenderPhaseSpaceTracksRun tests that run tracking records every class.
func TestRenderPhaseSpaceTracksRun(t *testing.T) {
	cfg := testConfig(writeDataDir(t), t.TempDir())
	cfg.Formats = []string{".svg"}

	store := &iocache.MockRunStore{}
	store.On("BeginRun", mock.Anything, cfg.Params()).Return("run-1", nil)
	store.On("RecordClassCount", "run-1", mock.AnythingOfType("schema.ClassSummary")).Return(nil).Times(len(DefaultCatalog()))
	store.On("EndRun", "run-1", mock.Anything, 2*len(DefaultCatalog()), mock.AnythingOfType("[]string")).Return(nil)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetTableStore").Return(nil)
	mgr.On("GetRunStore").Return(store)

	result, err := RenderPhaseSpace(WithoutHeader(context.Background()), cfg, mgr)
	require.NoError(t, err)
	assert.Equal(t, "run-1", result.RunID)
	store.AssertExpectations(t)
}

// TestRenderPhaseSpaceTrackingFailuresAreWarnings tests that store errors never abort a render.
func TestRenderPhaseSpaceTrackingFailuresAreWarnings(t *testing.T) {
	cfg := testConfig(writeDataDir(t), t.TempDir())
	cfg.Formats = []string{".svg"}

	store := &iocache.MockRunStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return("run-2", nil)
	store.On("RecordClassCount", "run-2", mock.Anything).Return(assert.AnError).Once()
	store.On("EndRun", "run-2", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetTableStore").Return(nil)
	mgr.On("GetRunStore").Return(store)

	_, err := RenderPhaseSpace(WithoutHeader(context.Background()), cfg, mgr)
	require.NoError(t, err)
	store.AssertExpectations(t)

	// A failed BeginRun leaves the render untracked
	failing := &iocache.MockRunStore{}
	failing.On("BeginRun", mock.Anything, mock.Anything).Return("", assert.AnError)
	mgr2 := &iocache.MockCacheManager{}
	mgr2.On("GetTableStore").Return(nil)
	mgr2.On("GetRunStore").Return(failing)

	result, err := RenderPhaseSpace(WithoutHeader(context.Background()), cfg, mgr2)
	require.NoError(t, err)
	assert.Empty(t, result.RunID)
	failing.AssertNotCalled(t, "EndRun", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// TestRenderPhaseSpaceMissingInput tests that a missing table fails before any output.
func TestRenderPhaseSpaceMissingInput(t *testing.T) {
	dataDir := writeDataDir(t)
	require.NoError(t, os.Remove(filepath.Join(dataDir, "frb.csv")))

	outDir := filepath.Join(t.TempDir(), "Plots")
	cfg := testConfig(dataDir, outDir)

	_, err := RenderPhaseSpace(WithoutHeader(context.Background()), cfg, untrackedManager())
	require.Error(t, err)
	assert.ErrorIs(t, err, contract.ErrMissingFile)
	assert.Contains(t, err.Error(), "frb")

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr), "no output directory on failure")
}

// TestRenderPhaseSpaceFullCatalog tests a render of every class and point
// source with one measurement per class into a directory that does not exist yet.
func TestRenderPhaseSpaceFullCatalog(t *testing.T) {
	dataDir := t.TempDir()
	for _, c := range DefaultCatalog() {
		// One point at the class label keeps every marker inside the axes
		content := fmt.Sprintf("vW (GHz s),L (Jy kpc^2)\n%g,%g\n", c.Text.X, c.Text.Y)
		require.NoError(t, os.WriteFile(filepath.Join(dataDir, c.FileName), []byte(content), 0o644))
	}

	outDir := filepath.Join(t.TempDir(), "nested", "Plots")
	result, err := RenderPhaseSpace(WithoutHeader(context.Background()), testConfig(dataDir, outDir), untrackedManager())
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCatalog()), result.Points)
	assert.Zero(t, result.Skipped)

	png, err := os.ReadFile(filepath.Join(outDir, "rtps.png"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")), "png signature")

	pdf, err := os.ReadFile(filepath.Join(outDir, "rtps.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "pdf signature")
}

// TestRenderPhaseSpaceFailureClosesRun tests that a failed render ends its tracked run.
func TestRenderPhaseSpaceFailureClosesRun(t *testing.T) {
	dataDir := writeDataDir(t)
	require.NoError(t, os.Remove(filepath.Join(dataDir, "novae.csv")))

	store := &iocache.MockRunStore{}
	store.On("BeginRun", mock.Anything, mock.Anything).Return("run-3", nil)
	store.On("EndRun", "run-3", mock.Anything, 0, []string{}).Return(nil).Once()

	mgr := &iocache.MockCacheManager{}
	mgr.On("GetTableStore").Return(nil)
	mgr.On("GetRunStore").Return(store)

	_, err := RenderPhaseSpace(WithoutHeader(context.Background()), testConfig(dataDir, t.TempDir()), mgr)
	require.ErrorIs(t, err, contract.ErrMissingFile)
	store.AssertExpectations(t)
	store.AssertNotCalled(t, "RecordClassCount", mock.Anything, mock.Anything)
}

// TestRenderPhaseSpaceMalformedInput tests that a malformed table is fatal.
func TestRenderPhaseSpaceMalformedInput(t *testing.T) {
	dataDir := writeDataDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "sn.csv"), []byte("vW (GHz s)\n1\n"), 0o644))

	_, err := RenderPhaseSpace(WithoutHeader(context.Background()), testConfig(dataDir, t.TempDir()), untrackedManager())
	assert.ErrorIs(t, err, contract.ErrMalformedTable)
}

// TestRenderPhaseSpaceNoSave tests that nothing is written when saving is disabled.
func TestRenderPhaseSpaceNoSave(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "Plots")
	cfg := testConfig(writeDataDir(t), outDir)
	cfg.Save = false

	result, err := RenderPhaseSpace(WithoutHeader(context.Background()), cfg, untrackedManager())
	require.NoError(t, err)
	assert.Empty(t, result.Files)
	assert.Empty(t, result.Preview)

	_, statErr := os.Stat(outDir)
	assert.True(t, os.IsNotExist(statErr))
}

// TestRenderPhaseSpacePreview tests that show without save renders to a temporary file.
func TestRenderPhaseSpacePreview(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "Plots")
	cfg := testConfig(writeDataDir(t), outDir)
	cfg.Save = false
	cfg.Show = true

	result, err := RenderPhaseSpace(WithoutHeader(context.Background()), cfg, untrackedManager())
	require.NoError(t, err)
	require.NotEmpty(t, result.Preview)
	t.Cleanup(func() { _ = os.RemoveAll(filepath.Dir(result.Preview)) })

	assert.Equal(t, ".png", filepath.Ext(result.Preview))
	_, err = os.Stat(result.Preview)
	assert.NoError(t, err)
	assert.Empty(t, result.Files)
}

// TestLoadSummaries tests the summaries of the default catalog.
func TestLoadSummaries(t *testing.T) {
	cfg := testConfig(writeDataDir(t), t.TempDir())

	summaries, err := LoadSummaries(context.Background(), cfg, untrackedManager())
	require.NoError(t, err)
	require.Len(t, summaries, len(DefaultCatalog()))
	for i, key := range ClassKeys() {
		assert.Equal(t, key, summaries[i].Key)
		assert.Equal(t, 3, summaries[i].Points)
		assert.Equal(t, 1, summaries[i].Skipped)
	}
}

// TestExecuteExport tests exporting all measurements to a CSV file.
func TestExecuteExport(t *testing.T) {
	cfg := testConfig(writeDataDir(t), t.TempDir())
	cfg.Output = schema.CSVOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "all.csv")

	require.NoError(t, ExecuteExport(context.Background(), cfg, untrackedManager()))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "class,vW (GHz s),L (Jy kpc^2)\npulsars,")
}

// TestExecuteCensus tests writing the census chart.
func TestExecuteCensus(t *testing.T) {
	outDir := t.TempDir()
	cfg := testConfig(writeDataDir(t), outDir)

	require.NoError(t, ExecuteCensus(context.Background(), cfg, untrackedManager()))
	_, err := os.Stat(filepath.Join(outDir, "rtps_census.png"))
	assert.NoError(t, err)
}

// TestCensusPath tests the default and overridden census paths.
func TestCensusPath(t *testing.T) {
	cfg := &contract.Config{OutputDir: "Plots", Basename: "rtps"}
	assert.Equal(t, filepath.Join("Plots", "rtps_census.png"), CensusPath(cfg))

	cfg.OutputFile = "counts.svg"
	assert.Equal(t, "counts.svg", CensusPath(cfg))
}

// TestConvert tests every conversion kind.
func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		kind     schema.ConversionKind
		tB       float64
		values   []float64
		expected []float64
		wantErr  bool
	}{
		{
			name:     "brightness temperature",
			kind:     schema.TBKind,
			tB:       1e12,
			values:   []float64{1, 10},
			expected: []float64{1e12 * 2.761 * 1.05026e-18, 1e14 * 2.761 * 1.05026e-18},
		},
		{
			name:     "cgs to astro",
			kind:     schema.CGSToAstroKind,
			values:   []float64{1e30},
			expected: []float64{1e30 * 1e19 / (3.0856775814913673e19 * 3.0856775814913673e19)},
		},
		{
			name:     "astro to cgs",
			kind:     schema.AstroToCGSKind,
			values:   []float64{1},
			expected: []float64{1e-19 * 3.0856775814913673e19 * 3.0856775814913673e19},
		},
		{
			name:    "unknown kind",
			kind:    "weird",
			values:  []float64{1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := Convert(tt.kind, tt.tB, tt.values)
			if tt.wantErr {
				assert.ErrorIs(t, err, contract.ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			require.Len(t, results, len(tt.expected))
			for i, r := range results {
				assert.Equal(t, tt.kind, r.Kind)
				assert.Equal(t, tt.values[i], r.Input)
				assert.InEpsilon(t, tt.expected[i], r.Output, 1e-12)
				assert.Equal(t, tt.tB, r.TB)
			}
		})
	}
}

// TestConvertEmpty tests that no values produce no results.
func TestConvertEmpty(t *testing.T) {
	results, err := Convert(schema.CGSToAstroKind, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

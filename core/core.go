// Package core has core logic for loading, summarizing and rendering source classes.
package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/rtps/core/agg"
	"github.com/huangsam/rtps/core/algo"
	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/outwriter"
	"github.com/huangsam/rtps/internal/render"
	"github.com/huangsam/rtps/schema"
)

// ExecutorFunc defines the function signature for executing commands that load the tables.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error

// ExecutePlot renders the phase space figure, writes it and optionally opens it.
// It serves as the main entry point for the 'plot' command.
func ExecutePlot(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	ow := outwriter.NewOutWriter(os.Stderr)
	result, err := RenderPhaseSpace(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ow.WriteRenderResult(*result)

	if cfg.Show && result.Preview != "" {
		if err := render.Show(result.Preview); err != nil {
			contract.LogWarn("Could not open the figure", err)
		}
	}
	return nil
}

// WithoutHeader returns a context in which renders print no progress header.
func WithoutHeader(ctx context.Context) context.Context {
	return withSuppressHeader(ctx)
}

// RenderPhaseSpace loads every class, draws the figure and writes it in each
// configured format. Run tracking failures are reported as warnings only.
func RenderPhaseSpace(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) (*schema.RenderResult, error) {
	start := time.Now()
	catalog := DefaultCatalog()
	if !shouldSuppressHeader(ctx) {
		outwriter.NewOutWriter(os.Stderr).WriteRenderHeader(cfg, len(catalog))
	}

	ctx = contextWithCacheManager(ctx, mgr)
	ctx = beginRun(ctx, cfg, start)
	runID, tracked := getRunID(ctx)

	result, err := renderFigure(ctx, cfg, mgr, catalog)
	if err != nil {
		if tracked {
			// A failed render still closes its run, with no points and no files
			endRun(ctx, runID, 0, []string{})
		}
		return nil, err
	}
	result.Duration = time.Since(start)

	// --- 4. End Run Tracking ---
	if tracked {
		result.RunID = runID
		endRun(ctx, runID, result.Points, result.Files)
	}
	return result, nil
}

// renderFigure loads the catalog, draws the figure and writes or previews it.
func renderFigure(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, catalog []schema.SourceClass) (*schema.RenderResult, error) {
	// --- 1. Load Phase (with caching) ---
	tables, err := agg.LoadTables(ctx, cfg, mgr, catalog)
	if err != nil {
		return nil, err
	}
	summaries := agg.Summaries(tables)
	recordClassCounts(ctx, summaries)

	// --- 2. Figure Assembly ---
	fig, err := render.NewFigure(tables, DefaultPointSources())
	if err != nil {
		return nil, fmt.Errorf("assemble figure: %w", err)
	}

	// --- 3. Output ---
	result := &schema.RenderResult{
		Files:   []string{},
		Points:  fig.Points,
		Skipped: fig.Skipped,
		Classes: summaries,
	}
	if cfg.Save {
		files, err := render.Save(fig, cfg.FigWidth, cfg.FigHeight, cfg.OutputDir, cfg.Basename, cfg.Formats)
		if err != nil {
			return nil, err
		}
		result.Files = files
		result.Preview = files[0]
	} else if cfg.Show {
		preview, err := savePreview(fig, cfg)
		if err != nil {
			return nil, err
		}
		result.Preview = preview
	}
	return result, nil
}

// savePreview writes the figure to a temporary directory so it can be
// shown when saving is disabled.
func savePreview(fig *render.Figure, cfg *contract.Config) (string, error) {
	dir, err := os.MkdirTemp("", "rtps-preview-")
	if err != nil {
		return "", fmt.Errorf("%w: %w", contract.ErrOutputWrite, err)
	}
	files, err := render.Save(fig, cfg.FigWidth, cfg.FigHeight, dir, cfg.Basename, cfg.Formats[:1])
	if err != nil {
		_ = os.RemoveAll(dir)
		return "", err
	}
	return files[0], nil
}

// beginRun starts run tracking when a run store is configured and stores the run ID in the context.
func beginRun(ctx context.Context, cfg *contract.Config, start time.Time) context.Context {
	store := runStore(ctx)
	if store == nil {
		return ctx
	}
	runID, err := store.BeginRun(start, cfg.Params())
	if err != nil {
		contract.LogWarn("Run tracking initialization failed", err)
		return ctx
	}
	return withRunID(ctx, runID)
}

// recordClassCounts stores the summary of every class for the current run.
func recordClassCounts(ctx context.Context, summaries []schema.ClassSummary) {
	runID, ok := getRunID(ctx)
	if !ok {
		return
	}
	store := runStore(ctx)
	for _, s := range summaries {
		if err := store.RecordClassCount(runID, s); err != nil {
			contract.LogWarn("Failed to record class count", err)
			return
		}
	}
}

// endRun finalizes run tracking.
func endRun(ctx context.Context, runID string, points int, files []string) {
	store := runStore(ctx)
	if store == nil {
		return
	}
	if err := store.EndRun(runID, time.Now(), points, files); err != nil {
		contract.LogWarn("Failed to finalize run tracking", err)
	}
}

// runStore returns the run store of the manager in the context, if any.
func runStore(ctx context.Context) contract.RunStore {
	mgr := cacheManagerFromContext(ctx)
	if mgr == nil {
		return nil
	}
	return mgr.GetRunStore()
}

// ExecuteClasses loads every class and prints its summary.
// It serves as the main entry point for the 'classes' command.
func ExecuteClasses(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	start := time.Now()
	summaries, err := LoadSummaries(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	ow := outwriter.NewOutWriter(os.Stderr)
	if skipped := agg.TotalSkipped(summaries); skipped > 0 {
		_, _ = fmt.Fprintf(ow.Log(), "⚠️  %d point(s) have non-positive values and are not plotted\n", skipped)
	}
	return ow.WriteClasses(summaries, cfg, time.Since(start))
}

// LoadSummaries loads every class of the catalog and summarizes it.
func LoadSummaries(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) ([]schema.ClassSummary, error) {
	tables, err := agg.LoadTables(ctx, cfg, mgr, DefaultCatalog())
	if err != nil {
		return nil, err
	}
	return agg.Summaries(tables), nil
}

// ExecuteExport writes every measurement tagged with its class key.
// It serves as the main entry point for the 'export' command.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	tables, err := agg.LoadTables(ctx, cfg, mgr, DefaultCatalog())
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(os.Stderr).WriteExport(schema.Flatten(tables), cfg)
}

// CensusPath returns where the census chart is written: the output file when
// one is configured, otherwise <output-dir>/<basename>_census.png.
func CensusPath(cfg *contract.Config) string {
	if cfg.OutputFile != "" {
		return cfg.OutputFile
	}
	return filepath.Join(cfg.OutputDir, cfg.Basename+"_census.png")
}

// ExecuteCensus draws a bar chart of the number of measurements per class.
// It serves as the main entry point for the 'census' command.
func ExecuteCensus(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager) error {
	tables, err := agg.LoadTables(ctx, cfg, mgr, DefaultCatalog())
	if err != nil {
		return err
	}
	path := CensusPath(cfg)
	if err := render.SaveCensus(path, tables); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote %s (%d points)\n", path, schema.TotalPoints(tables))
	return nil
}

// Convert applies one conversion to every value. For brightness temperature
// the values are vW (GHz s) and tB is the temperature (K).
func Convert(kind schema.ConversionKind, tB float64, values []float64) ([]schema.ConversionResult, error) {
	var fn func(float64) float64
	switch kind {
	case schema.TBKind:
		fn = func(vW float64) float64 { return algo.BrightnessTemperatureLuminosity(tB, vW) }
	case schema.CGSToAstroKind:
		fn = algo.CGSToAstro
	case schema.AstroToCGSKind:
		fn = algo.AstroToCGS
	default:
		return nil, fmt.Errorf("%w: unknown conversion %q", contract.ErrInvalidConfig, kind)
	}

	results := make([]schema.ConversionResult, len(values))
	for i, v := range values {
		results[i] = schema.ConversionResult{Kind: kind, Input: v, Output: fn(v)}
		if kind == schema.TBKind {
			results[i].TB = tB
		}
	}
	return results, nil
}

// ExecuteConvert converts values and prints the results.
// It serves as the main entry point for the 'convert' commands.
func ExecuteConvert(cfg *contract.Config, kind schema.ConversionKind, tB float64, values []float64) error {
	results, err := Convert(kind, tB, values)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter(os.Stderr).WriteConversions(results, cfg)
}

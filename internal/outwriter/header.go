package outwriter

import (
	"fmt"
	"io"
	"time"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
)

// LogRenderHeader prints a concise, 2-line header before a render.
func LogRenderHeader(w io.Writer, cfg *contract.Config, classes int) {
	// Line 1: Where the tables come from
	_, _ = fmt.Fprintf(w, "🔭 Data: %s (%d classes, %d workers)\n", cfg.DataDir, classes, cfg.Workers)

	// Line 2: What the render produces
	if cfg.Save {
		_, _ = fmt.Fprintf(w, "🖼️  Output: %s/%s %v (%.1fx%.1f in)\n", cfg.OutputDir, cfg.Basename, cfg.Formats, cfg.FigWidth, cfg.FigHeight)
	} else {
		_, _ = fmt.Fprintln(w, "🖼️  Output: none (save disabled)")
	}
}

// LogRenderResult prints the outcome of a render.
func LogRenderResult(w io.Writer, result schema.RenderResult) {
	for _, f := range result.Files {
		_, _ = fmt.Fprintf(w, "💾 Wrote %s\n", f)
	}
	_, _ = fmt.Fprintf(w, "✨ Plotted %d points (%d skipped) in %v\n", result.Points, result.Skipped, result.Duration.Round(time.Millisecond))
	if result.RunID != "" {
		_, _ = fmt.Fprintf(w, "📝 Run: %s\n", result.RunID)
	}
}

// Package outwriter has output and writer logic.
package outwriter

import (
	"io"
	"time"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct {
	log io.Writer // Progress lines, kept apart from data output
}

// NewOutWriter creates a new instance of the output writer.
// Progress lines go to log; a nil log discards them.
func NewOutWriter(log io.Writer) *OutWriter {
	if log == nil {
		log = io.Discard
	}
	return &OutWriter{log: log}
}

// WriteClasses prints class summaries using the configured output format.
func (ow *OutWriter) WriteClasses(summaries []schema.ClassSummary, cfg *contract.Config, duration time.Duration) error {
	return PrintClassSummaries(summaries, cfg, duration)
}

// WriteConversions prints conversion results using the configured output format.
func (ow *OutWriter) WriteConversions(results []schema.ConversionResult, cfg *contract.Config) error {
	return PrintConversions(results, cfg)
}

// WriteExport writes class-tagged measurements using the configured output format.
func (ow *OutWriter) WriteExport(rows []schema.ExportRow, cfg *contract.Config) error {
	return PrintExportRows(rows, cfg)
}

// WriteRenderHeader prints the header shown before a render.
func (ow *OutWriter) WriteRenderHeader(cfg *contract.Config, classes int) {
	LogRenderHeader(ow.log, cfg, classes)
}

// WriteRenderResult prints the outcome of a render.
func (ow *OutWriter) WriteRenderResult(result schema.RenderResult) {
	LogRenderResult(ow.log, result)
}

// Log returns the writer that receives progress lines.
func (ow *OutWriter) Log() io.Writer {
	return ow.log
}

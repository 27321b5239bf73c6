package outwriter

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/parquet"
	"github.com/huangsam/rtps/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintClassSummaries outputs the per-class summaries, dispatching based on the output format configured.
func PrintClassSummaries(summaries []schema.ClassSummary, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONClasses(w, summaries)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVClasses(w, summaries, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteClassCountsParquet(parquet.ConvertClassSummaries(summaries), path)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		if err := printClassTable(os.Stdout, summaries, cfg, fmtFloat, intFmt, duration); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printClassTable prints the summaries using the tablewriter API.
func printClassTable(w io.Writer, summaries []schema.ClassSummary, cfg *contract.Config, fmtFloat func(float64) string, intFmt string, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off // Unit headers keep their case and spacing
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	table.Header([]string{"#", "Class", "Points", "Skipped", "Min vW", "Max vW", "Min L", "Max L", "Status", "Path"})

	pathWidth := GetMaxTablePathWidth(cfg)
	data := make([][]string, 0, len(summaries))
	for i, s := range summaries {
		status := contract.GetPlainLabel(s)
		if cfg.UseColors {
			status = contract.GetColorLabel(s)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			s.Key,
			fmt.Sprintf(intFmt, s.Points),
			fmt.Sprintf(intFmt, s.Skipped),
			fmtFloat(s.MinVW),
			fmtFloat(s.MaxVW),
			fmtFloat(s.MinL),
			fmtFloat(s.MaxL),
			status,
			contract.TruncatePath(s.Path, pathWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	totalPoints, totalSkipped := 0, 0
	for _, s := range summaries {
		totalPoints += s.Points
		totalSkipped += s.Skipped
	}
	_, _ = fmt.Fprintf(w, "Showing %d classes (total points: %d, skipped: %d)\n", len(summaries), totalPoints, totalSkipped)
	_, _ = fmt.Fprintf(w, "Loaded in %v with %d workers. Cache backend: %s\n", duration, cfg.Workers, cfg.CacheBackend)
	return nil
}

package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/parquet"
	"github.com/huangsam/rtps/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// conversionUnits names the input and output columns of each conversion.
var conversionUnits = map[schema.ConversionKind][2]string{
	schema.TBKind:         {"vW (GHz s)", "L (Jy kpc^2)"},
	schema.CGSToAstroKind: {"L (erg s^-1 Hz^-1)", "L (Jy kpc^2)"},
	schema.AstroToCGSKind: {"L (Jy kpc^2)", "L (erg s^-1 Hz^-1)"},
}

// PrintConversions outputs conversion results, dispatching based on the output format configured.
func PrintConversions(results []schema.ConversionResult, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVConversions(w, results, fmtFloat)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if err := writeParquetFile(cfg.OutputFile, func(path string) error {
			return parquet.WriteConversionsParquet(parquet.ConvertConversions(results), path)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		if err := printConversionTable(os.Stdout, results, fmtFloat); err != nil {
			return fmt.Errorf("error writing table output: %w", err)
		}
	}
	return nil
}

// printConversionTable prints one row per converted value.
func printConversionTable(w io.Writer, results []schema.ConversionResult, fmtFloat func(float64) string) error {
	if len(results) == 0 {
		return nil
	}
	kind := results[0].Kind
	units := conversionUnits[kind]

	headers := []string{units[0], units[1]}
	if kind == schema.TBKind {
		headers = []string{"T_B (K)", units[0], units[1]}
	}

	table := tablewriter.NewWriter(w)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Header.Formatting.AutoFormat = tw.Off // Unit headers keep their case and spacing
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	table.Header(headers)

	data := make([][]string, 0, len(results))
	for _, r := range results {
		row := []string{fmtFloat(r.Input), fmtFloat(r.Output)}
		if kind == schema.TBKind {
			row = append([]string{fmtFloat(r.TB)}, row...)
		}
		data = append(data, row)
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// writeCSVConversions writes conversion results as CSV rows.
func writeCSVConversions(w io.Writer, results []schema.ConversionResult, fmtFloat func(float64) string) error {
	return writeCSVWithHeader(w, []string{"kind", "tb_k", "input", "output"}, func(cw *csv.Writer) error {
		for _, r := range results {
			tb := ""
			if r.Kind == schema.TBKind {
				tb = fmtFloat(r.TB)
			}
			if err := cw.Write([]string{string(r.Kind), tb, fmtFloat(r.Input), fmtFloat(r.Output)}); err != nil {
				return err
			}
		}
		return nil
	})
}

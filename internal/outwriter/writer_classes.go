package outwriter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
)

// jsonClassSummary is the JSON shape of a class summary. Empty ranges are null.
type jsonClassSummary struct {
	Rank    int      `json:"rank"`
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Status  string   `json:"status"`
	Path    string   `json:"path"`
	Points  int      `json:"points"`
	Skipped int      `json:"skipped"`
	MinVW   *float64 `json:"min_vw"`
	MaxVW   *float64 `json:"max_vw"`
	MinL    *float64 `json:"min_l"`
	MaxL    *float64 `json:"max_l"`
}

// toJSONClassSummaries converts summaries to their JSON shape, ranked by input order.
func toJSONClassSummaries(summaries []schema.ClassSummary) []jsonClassSummary {
	output := make([]jsonClassSummary, len(summaries))
	for i, s := range summaries {
		output[i] = jsonClassSummary{
			Rank:    i + 1,
			Key:     s.Key,
			Label:   s.Label,
			Status:  contract.GetPlainLabel(s),
			Path:    s.Path,
			Points:  s.Points,
			Skipped: s.Skipped,
			MinVW:   jsonFloat(s.MinVW),
			MaxVW:   jsonFloat(s.MaxVW),
			MinL:    jsonFloat(s.MinL),
			MaxL:    jsonFloat(s.MaxL),
		}
	}
	return output
}

// writeJSONClasses marshals the summaries to JSON and writes them.
func writeJSONClasses(w io.Writer, summaries []schema.ClassSummary) error {
	return writeJSON(w, toJSONClassSummaries(summaries))
}

// MarshalClassSummaries returns the indented JSON form of the summaries.
func MarshalClassSummaries(summaries []schema.ClassSummary) ([]byte, error) {
	return json.MarshalIndent(toJSONClassSummaries(summaries), "", "  ")
}

// writeCSVClasses writes the summaries as CSV rows.
func writeCSVClasses(w io.Writer, summaries []schema.ClassSummary, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"rank", "class", "label", "points", "skipped", "min_vw", "max_vw", "min_l", "max_l", "status", "path"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, s := range summaries {
			row := []string{
				strconv.Itoa(i + 1),
				s.Key,
				s.Label,
				fmt.Sprintf(intFmt, s.Points),
				fmt.Sprintf(intFmt, s.Skipped),
				fmtFloat(s.MinVW),
				fmtFloat(s.MaxVW),
				fmtFloat(s.MinL),
				fmtFloat(s.MaxL),
				contract.GetPlainLabel(s),
				s.Path,
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

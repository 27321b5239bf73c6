package cmd

import (
	"github.com/huangsam/rtps/core"
	"github.com/spf13/cobra"
)

// censusCmd draws the point count of every class as a bar chart.
var censusCmd = &cobra.Command{
	Use:   "census",
	Short: "Draw a bar chart of points per source class.",
	Long: `Load every source-class table and draw one bar per class.

The chart is written to <output-dir>/<basename>_census.png, or to
--output-file when given. Only .png and .svg files are supported.

Examples:
  # Write Plots/rtps_census.png
  rtps census

  # Write an SVG chart
  rtps census --output-file census.svg`,
	PreRunE: sharedSetupWrapper,
	Run:     runWith(core.ExecuteCensus, "Cannot draw census"),
}

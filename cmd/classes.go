package cmd

import (
	"github.com/huangsam/rtps/core"
	"github.com/spf13/cobra"
)

// classesCmd summarizes every source class.
var classesCmd = &cobra.Command{
	Use:   "classes",
	Short: "Summarize the points of every source class.",
	Long: `Load every source-class table and print one row per class.

Each row shows the number of plottable points, the number of points a
log-log figure cannot show, and the ν·W and L ranges of the class.

Examples:
  # Show the class table
  rtps classes

  # Export the summary as JSON
  rtps classes --output json --output-file classes.json`,
	PreRunE: sharedSetupWrapper,
	Run:     runWith(core.ExecuteClasses, "Cannot summarize classes"),
}

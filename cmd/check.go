package cmd

import (
	"github.com/huangsam/rtps/core"
	"github.com/spf13/cobra"
)

// checkCmd validates the data directory for CI/CD gating.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every source-class table without rendering.",
	Long: `Load every source-class table and report all that are missing or malformed.

Unlike plot, check does not stop at the first bad table. Classes that load
but have no plottable points are listed as warnings.

Exit codes:
  0 - every table loaded
  1 - at least one table failed

Examples:
  # Gate a catalog update in CI
  rtps check --data-dir Data`,
	PreRunE: sharedSetupWrapper,
	Run:     runWith(core.ExecuteCheck, "Data check failed"),
}

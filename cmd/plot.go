package cmd

import (
	"github.com/huangsam/rtps/core"
	"github.com/spf13/cobra"
)

// plotCmd renders the phase space figure.
var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render the transient phase space figure.",
	Long: `Load every source-class table and draw the phase space figure.

The figure places each class in the plane of transient width (ν·W, GHz s)
and pseudo-luminosity (L, Jy kpc²), and adds:
- Brightness temperature lines from 10^2 K to 10^40 K
- The forbidden regions of the uncertainty principle
- A secondary axis in erg s^-1 Hz^-1
- Labeled point sources such as the Crab giant pulses

The figure is written once per configured format to <output-dir>/<basename><ext>.
If any table is missing or malformed, no output is written.

Examples:
  # Render PNG and PDF into ./Plots
  rtps plot

  # Render vector formats only, into a custom directory
  rtps plot --formats svg,eps --output-dir figures

  # Preview without keeping files
  rtps plot --show --save=false

  # Override one class table
  rtps plot --inputs-override "frb:catalogs/frb_2026.parquet"`,
	PreRunE: sharedSetupWrapper,
	Run:     runWith(core.ExecutePlot, "Cannot render phase space"),
}

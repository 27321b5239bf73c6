package cmd

import (
	"fmt"
	"strconv"

	"github.com/huangsam/rtps/core"
	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// parseValues parses positional arguments as floats.
func parseValues(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: value %q is not a number", contract.ErrInvalidConfig, arg)
		}
		values[i] = v
	}
	return values, nil
}

// runConversion parses the arguments and prints one conversion per value.
func runConversion(kind schema.ConversionKind, tB float64, args []string) error {
	values, err := parseValues(args)
	if err != nil {
		return err
	}
	return core.ExecuteConvert(cfg, kind, tB, values)
}

// convertCmd groups the unit conversions.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert between luminosity units",
	Long: `Apply the conversions used to draw the phase space figure.

Subcommands:
  tb           - Pseudo-luminosity of a brightness temperature at each ν·W
  cgs-to-astro - erg s^-1 Hz^-1 to Jy kpc^2
  astro-to-cgs - Jy kpc^2 to erg s^-1 Hz^-1

Examples:
  # Luminosity of a 10^12 K source at three widths
  rtps convert tb --tb 1e12 1e-3 1e-2 1e-1

  # Secondary axis value of 1 Jy kpc^2
  rtps convert astro-to-cgs 1`,
}

// convertTBCmd evaluates a brightness temperature line.
var convertTBCmd = &cobra.Command{
	Use:     "tb <vW>...",
	Short:   "Compute the luminosity of a brightness temperature at each ν·W (GHz s)",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		tB := viper.GetFloat64("tb")
		if tB <= 0 {
			contract.LogFatal("Cannot convert", fmt.Errorf("%w: tb must be positive (received %g)", contract.ErrInvalidConfig, tB))
		}
		if err := runConversion(schema.TBKind, tB, args); err != nil {
			contract.LogFatal("Cannot convert", err)
		}
	},
}

// convertCGSToAstroCmd converts erg/s/Hz to Jy kpc^2.
var convertCGSToAstroCmd = &cobra.Command{
	Use:     "cgs-to-astro <L>...",
	Short:   "Convert erg s^-1 Hz^-1 to Jy kpc^2",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runConversion(schema.CGSToAstroKind, 0, args); err != nil {
			contract.LogFatal("Cannot convert", err)
		}
	},
}

// convertAstroToCGSCmd converts Jy kpc^2 to erg/s/Hz.
var convertAstroToCGSCmd = &cobra.Command{
	Use:     "astro-to-cgs <L>...",
	Short:   "Convert Jy kpc^2 to erg s^-1 Hz^-1",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := runConversion(schema.AstroToCGSKind, 0, args); err != nil {
			contract.LogFatal("Cannot convert", err)
		}
	},
}

// Package algo holds the pure unit and physics conversions behind the phase space diagram.
package algo

// KiloparsecMeters is one kiloparsec in meters. Both luminosity conversions
// derive from this single value so that they stay exact inverses.
const KiloparsecMeters = 3.0856775814913673e19

// Physical boundaries drawn on the diagram.
const (
	IncoherentLimitK   = 1e12    // Brightness temperature bound for incoherent emission (K)
	UncertaintyLimitVW = 5.0e-10 // Smallest vW allowed by the uncertainty principle (GHz s)
)

// astroPerCGS converts erg s^-1 Hz^-1 to Jy kpc^2.
const astroPerCGS = 1e19 / (KiloparsecMeters * KiloparsecMeters)

// BrightnessTemperatureLuminosity returns the spectral pseudo-luminosity (Jy kpc^2)
// of a source with brightness temperature tB (K) at frequency-duration product vW (GHz s).
//
// L = tB * vW^2 * 2.761e-5 W/Hz, with 1 W/Hz = 1.05026e-13 Jy kpc^2 and the
// 4*pi solid angle factor removed.
func BrightnessTemperatureLuminosity(tB, vW float64) float64 {
	return tB * (vW * vW) * 2.761 * 1.05026e-18
}

// BrightnessTemperatureCurve evaluates BrightnessTemperatureLuminosity over vWs.
// The result has the same length and order as vWs.
func BrightnessTemperatureCurve(tB float64, vWs []float64) []float64 {
	out := make([]float64, len(vWs))
	for i, vW := range vWs {
		out[i] = BrightnessTemperatureLuminosity(tB, vW)
	}
	return out
}

// CGSToAstro converts a luminosity from erg s^-1 Hz^-1 to Jy kpc^2.
func CGSToAstro(lCGS float64) float64 {
	return lCGS * astroPerCGS
}

// AstroToCGS converts a luminosity from Jy kpc^2 to erg s^-1 Hz^-1.
func AstroToCGS(lAstro float64) float64 {
	return lAstro / astroPerCGS
}

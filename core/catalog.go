package core

import "github.com/huangsam/rtps/schema"

// classLabelSize is the font size of class and point source labels.
const classLabelSize = 14

// DefaultCatalog returns the source classes of the figure in drawing order.
// The returned slice is a fresh copy, so callers may modify it.
func DefaultCatalog() []schema.SourceClass {
	return []schema.SourceClass{
		newClass("pulsars", "Pulsars", "pulsars.csv", "blue", 0.8, 1.35e-4, 4.04e-6),
		newClass("rrats", "RRATs", "rrats.csv", "red", 0.8, 9e-3, 92),
		newClass("crab_gp", "Crab GPs", "crab_gp.csv", "slateblue", 0.8, 5e-8, 8.3),
		newClass("crab_nano", "Crab nanoshots", "crab_nano.csv", "maroon", 0.8, 8e-10, 1305),
		newClass("sgr1935", "SGR 1935+2154", "sgr1935.csv", "purple", 0.8, 1.2e-3, 78805),
		newClass("frb", "Localized fast radio bursts", "frb.csv", "orangered", 0.9, 2.44e-4, 2.55e14),
		newClass("gleamx", "GLEAM-X\nJ162759.5", "gleamx.csv", "k", 0.9, 1.1, 1e-1),
		newClass("solar_bursts", "Solar bursts", "solar_bursts.csv", "orange", 0.9, 8, 3e-6),
		newClass("sn", "Supernovae", "sn.csv", "#808080", 0.9, 1e4, 1e8),
		newClass("agn", "AGN/Blazar/QSO", "agn.csv", "navy", 0.9, 3e3, 1e15),
		newClass("grb", "γ-ray burst afterglows", "grb.csv", "rebeccapurple", 0.9, 5e2, 1e12),
		newClass("xrb", "X-ray binaries", "xrb.csv", "darkgoldenrod", 0.9, 1e3, 2e4),
		newClass("novae", "Novae", "novae.csv", "palevioletred", 0.9, 1e8, 1),
		newClass("flarestars", "Flare stars/brown dwarfs", "flarestars.csv", "brown", 0.9, 1e3, 6e-9),
		newClass("rscvn", "RSCVn", "rscvn.csv", "#8B0000", 0.9, 5e6, 6e-3),
		newClass("magcv", "Magnetic CV", "magcv.csv", "#228B22", 0.9, 6e3, 2e-5),
	}
}

// DefaultPointSources returns the single sources drawn from literal coordinates.
func DefaultPointSources() []schema.PointSource {
	return []schema.PointSource{
		newPointSource("ar_sco", "AR Sco", "orchid", 0.016, 1053, 3e-2, 2e3),
		newPointSource("gcrt_j1745", "GCRT J1745−3009", "teal", 200, 200, 10, 8e2),
		newPointSource("mkt_j1704", "MKT J170456.2", "darkslategray", 2570400, 0.214775, 6e6, 9e-2),
		newPointSource("jupiter_dam", "Jupiter DAM", "saddlebrown", 4e-3, 5e-9, 5e-4, 1e-9),
		newPointSource("gw170817", "GW 170817\nafterglow", "indigo", 7.1e7, 1.4e5, 2e7, 2e3),
	}
}

// ClassKeys returns the keys of the default catalog in drawing order.
func ClassKeys() []string {
	catalog := DefaultCatalog()
	keys := make([]string, len(catalog))
	for i, c := range catalog {
		keys[i] = c.Key
	}
	return keys
}

func newClass(key, label, file, clr string, alpha, x, y float64) schema.SourceClass {
	return schema.SourceClass{
		Key:      key,
		Label:    label,
		FileName: file,
		Color:    clr,
		Alpha:    alpha,
		Text:     schema.TextLabel{Text: label, X: x, Y: y, Size: classLabelSize},
	}
}

func newPointSource(key, label, clr string, vw, l, x, y float64) schema.PointSource {
	return schema.PointSource{
		Key:   key,
		Point: schema.Measurement{VW: vw, L: l},
		Color: clr,
		Alpha: 0.9,
		Text:  schema.TextLabel{Text: label, X: x, Y: y, Size: classLabelSize},
	}
}

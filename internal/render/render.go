// Package render draws the radio transient phase space figure with gonum/plot
// and the class census chart with go-chart.
package render

import (
	"fmt"
	"image/color"

	"github.com/huangsam/rtps/core/algo"
	"github.com/huangsam/rtps/schema"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// CurveSamples is the number of vW samples of each brightness temperature line.
const CurveSamples = 1000

// Annotation sizes in points and the slope of T_B labels in degrees.
const (
	tbLabelSize    = 13
	tbLabelAngle   = 50.5
	classLabelSize = 14
	markerRadius   = 3
)

// secondaryMargin is the room kept to the right of the data area for the secondary axis.
const secondaryMargin = 1.1 * vg.Inch

// TBValues are the brightness temperatures (K) of the reference lines.
var TBValues = []float64{1e4, 1e8, 1e12, 1e16, 1e20, 1e24, 1e28, 1e32, 1e36, 1e40}

// tbLabel places the label of one reference line.
type tbLabel struct {
	exp  int
	x, y float64
}

var tbLabels = []tbLabel{
	{40, 9e-10, 1.5e5},
	{36, 9e-10, 15},
	{32, 9e-10, 1.5e-3},
	{28, 9e-10, 1.5e-7},
	{24, 6e-9, 7e-10},
	{20, 6e-7, 7e-10},
	{16, 6e-5, 7e-10},
	{12, 1e-1, 2e-7},
	{8, 6e-1, 7e-10},
	{4, 6e1, 7e-10},
}

// Uncertainty principle annotation.
const (
	uncertaintyLabel  = "Uncertainty principle"
	uncertaintyLabelX = 1.5e-10
	uncertaintyLabelY = 10
)

// Figure is an assembled phase space plot ready to be encoded.
type Figure struct {
	Plot        *plot.Plot
	RightMargin vg.Length // Reserved for the secondary axis
	Points      int       // Measurements drawn
	Skipped     int       // Measurements that log axes cannot show
}

// NewFigure assembles the figure: reference lines, shaded regions, one scatter
// series per class, the point sources, then the fixed axes.
func NewFigure(tables []schema.ClassTable, sources []schema.PointSource) (*Figure, error) {
	p := plot.New()
	fig := &Figure{Plot: p, RightMargin: secondaryMargin}

	if err := addTemperatureLines(p); err != nil {
		return nil, err
	}
	if err := addForbiddenRegions(p); err != nil {
		return nil, err
	}
	for _, ct := range tables {
		drawn, skipped, err := addClass(p, ct)
		if err != nil {
			return nil, err
		}
		fig.Points += drawn
		fig.Skipped += skipped
	}
	if err := addPointSources(p, sources); err != nil {
		return nil, err
	}

	// Ranges are set last since p.Add widens them to the data
	setupAxes(p)
	p.Add(newSecondaryAxis(p, secondaryMargin))
	return fig, nil
}

// addTemperatureLines draws the dotted lines of constant brightness temperature.
func addTemperatureLines(p *plot.Plot) error {
	lines, err := temperatureLines()
	if err != nil {
		return err
	}
	for _, line := range lines {
		p.Add(line)
	}

	labels := make(annotations, 0, len(tbLabels))
	style := textStyle(MustColor("k", 1), tbLabelSize, tbLabelAngle, plot.DefaultTextHandler)
	for _, l := range tbLabels {
		labels = append(labels, annotation{
			X:     l.x,
			Y:     l.y,
			Text:  powerLabel(l.exp) + " K",
			Style: style,
		})
	}
	p.Add(labels)
	return nil
}

// temperatureLines returns one dotted line per value of TBValues.
func temperatureLines() ([]*plotter.Line, error) {
	vw := algo.GeomSpace(XMin, XMax, CurveSamples)
	style := draw.LineStyle{
		Color:  MustColor("k", 0.3),
		Width:  vg.Points(1),
		Dashes: []vg.Length{vg.Points(1), vg.Points(1.65)},
	}

	lines := make([]*plotter.Line, 0, len(TBValues))
	for _, tb := range TBValues {
		line, err := plotter.NewLine(curveXYs(vw, algo.BrightnessTemperatureCurve(tb, vw)))
		if err != nil {
			return nil, fmt.Errorf("T_B line %g: %w", tb, err)
		}
		line.LineStyle = style
		lines = append(lines, line)
	}
	return lines, nil
}

// addForbiddenRegions shades the incoherent emission region below T_B = 1e12 K
// and the range of vW forbidden by the uncertainty principle.
func addForbiddenRegions(p *plot.Plot) error {
	vw := algo.GeomSpace(XMin, XMax, CurveSamples)
	bound := algo.BrightnessTemperatureCurve(algo.IncoherentLimitK, vw)

	// Upper edge follows the T_B curve, lower edge runs back along the axis floor
	ring := make(plotter.XYs, 0, 2*len(vw))
	for i := range vw {
		ring = append(ring, plotter.XY{X: vw[i], Y: bound[i]})
	}
	for i := len(vw) - 1; i >= 0; i-- {
		ring = append(ring, plotter.XY{X: vw[i], Y: YMin})
	}
	incoherent, err := filledPolygon(ring, MustColor("lightcyan", 1))
	if err != nil {
		return fmt.Errorf("incoherent region: %w", err)
	}
	p.Add(incoherent)

	span, err := filledPolygon(plotter.XYs{
		{X: XMin, Y: YMin},
		{X: algo.UncertaintyLimitVW, Y: YMin},
		{X: algo.UncertaintyLimitVW, Y: YMax},
		{X: XMin, Y: YMax},
	}, MustColor("darkgray", 1))
	if err != nil {
		return fmt.Errorf("uncertainty region: %w", err)
	}
	p.Add(span)

	boundary, err := plotter.NewLine(plotter.XYs{
		{X: algo.UncertaintyLimitVW, Y: YMin},
		{X: algo.UncertaintyLimitVW, Y: YMax},
	})
	if err != nil {
		return fmt.Errorf("uncertainty boundary: %w", err)
	}
	boundary.LineStyle = draw.LineStyle{Color: MustColor("k", 1), Width: vg.Points(1)}
	p.Add(boundary)

	p.Add(annotations{{
		X:     uncertaintyLabelX,
		Y:     uncertaintyLabelY,
		Text:  uncertaintyLabel,
		Style: textStyle(MustColor("k", 1), classLabelSize, 90, plot.DefaultTextHandler),
	}})
	return nil
}

// addClass draws one source class and its label. It returns how many points
// were drawn and how many were skipped as unplottable.
func addClass(p *plot.Plot, ct schema.ClassTable) (int, int, error) {
	marker, err := ParseColor(ct.Class.Color, ct.Class.Alpha)
	if err != nil {
		return 0, 0, fmt.Errorf("class %s: %w", ct.Class.Key, err)
	}

	xys := make(plotter.XYs, 0, ct.Table.Len())
	for _, r := range ct.Table.Rows {
		if plottable(r.VW, r.L) {
			xys = append(xys, plotter.XY{X: r.VW, Y: r.L})
		}
	}
	skipped := ct.Table.Len() - len(xys)

	if len(xys) > 0 {
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return 0, 0, fmt.Errorf("class %s: %w", ct.Class.Key, err)
		}
		scatter.GlyphStyle = draw.GlyphStyle{Color: marker, Radius: vg.Points(markerRadius), Shape: draw.CircleGlyph{}}
		p.Add(scatter)
	}

	labelColor, _ := ParseColor(ct.Class.Color, 1)
	p.Add(annotations{{
		X:     ct.Class.Text.X,
		Y:     ct.Class.Text.Y,
		Text:  ct.Class.Text.Text,
		Style: labelStyle(ct.Class.Text, labelColor),
	}})
	return len(xys), skipped, nil
}

// addPointSources draws the sources whose coordinates are constants.
func addPointSources(p *plot.Plot, sources []schema.PointSource) error {
	for _, src := range sources {
		marker, err := ParseColor(src.Color, src.Alpha)
		if err != nil {
			return fmt.Errorf("point source %s: %w", src.Key, err)
		}
		if plottable(src.Point.VW, src.Point.L) {
			scatter, err := plotter.NewScatter(plotter.XYs{{X: src.Point.VW, Y: src.Point.L}})
			if err != nil {
				return fmt.Errorf("point source %s: %w", src.Key, err)
			}
			scatter.GlyphStyle = draw.GlyphStyle{Color: marker, Radius: vg.Points(markerRadius), Shape: draw.CircleGlyph{}}
			p.Add(scatter)
		}

		labelColor, _ := ParseColor(src.Color, 1)
		p.Add(annotations{{
			X:     src.Text.X,
			Y:     src.Text.Y,
			Text:  src.Text.Text,
			Style: labelStyle(src.Text, labelColor),
		}})
	}
	return nil
}

// labelStyle returns the text style of a class or point source label.
func labelStyle(l schema.TextLabel, clr color.Color) text.Style {
	size := l.Size
	if size <= 0 {
		size = classLabelSize
	}
	return textStyle(clr, size, l.Rotation, plot.DefaultTextHandler)
}

// curveXYs zips two equal-length slices into plot points.
func curveXYs(x, y []float64) plotter.XYs {
	xys := make(plotter.XYs, len(x))
	for i := range x {
		xys[i] = plotter.XY{X: x[i], Y: y[i]}
	}
	return xys
}

// filledPolygon returns a polygon filled and outlined with one color.
func filledPolygon(ring plotter.XYs, clr color.Color) (*plotter.Polygon, error) {
	poly, err := plotter.NewPolygon(ring)
	if err != nil {
		return nil, err
	}
	poly.Color = clr
	poly.LineStyle = draw.LineStyle{Color: clr, Width: 0}
	return poly, nil
}

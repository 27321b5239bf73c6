package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/huangsam/rtps/core/algo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Axis ranges of the figure. Annotation coordinates are tied to them.
const (
	XMin = 1e-10
	XMax = 1e10
	YMin = 1e-10
	YMax = 1e16

	// Secondary axis range in erg s^-1 Hz^-1
	SecondaryMin = 1e10
	SecondaryMax = 1e36
)

// Axis titles. They are plain text: the gonum LaTeX handler cannot lay out
// sub- or superscripts.
const (
	xAxisLabel         = "Radio frequency (GHz) × Transient duration (s)"
	yAxisLabel         = "Spectral pseudo-luminosity, Lν (Jy kpc²)"
	secondaryAxisLabel = "Spectral pseudo-luminosity, Lν (erg s⁻¹ Hz⁻¹)"
)

// superscriptDigits maps ASCII digits and the minus sign to their superscript forms.
var superscriptDigits = strings.NewReplacer(
	"-", "⁻",
	"0", "⁰", "1", "¹", "2", "²", "3", "³", "4", "⁴",
	"5", "⁵", "6", "⁶", "7", "⁷", "8", "⁸", "9", "⁹",
)

// SecondaryTick is one tick of the right-hand axis.
type SecondaryTick struct {
	Value    float64 // erg s^-1 Hz^-1
	Position float64 // Jy kpc^2, on the primary axis
	Label    string
}

// powerTicks returns one tick per decade from 10^lo to 10^hi.
// Only decades whose offset from lo is a multiple of every are labeled.
func powerTicks(lo, hi, every int) []plot.Tick {
	values := algo.GeomSpace(math.Pow(10, float64(lo)), math.Pow(10, float64(hi)), hi-lo+1)
	ticks := make([]plot.Tick, len(values))
	for i, v := range values {
		ticks[i] = plot.Tick{Value: v}
		if i%every == 0 {
			ticks[i].Label = powerLabel(lo + i)
		}
	}
	return ticks
}

// powerLabel formats 10^exp with a superscript exponent, with 10^0 shown as 1.
func powerLabel(exp int) string {
	if exp == 0 {
		return "1"
	}
	return "10" + superscriptDigits.Replace(strconv.Itoa(exp))
}

// XTicks returns the fixed ticks of the vW axis.
func XTicks() []plot.Tick {
	return powerTicks(-10, 10, 2)
}

// YTicks returns the fixed ticks of the luminosity axis.
func YTicks() []plot.Tick {
	return powerTicks(-10, 16, 2)
}

// SecondaryTicks returns the ticks of the erg s^-1 Hz^-1 axis that fall inside
// the primary luminosity range, placed through the unit conversion.
func SecondaryTicks() []SecondaryTick {
	var ticks []SecondaryTick
	for _, t := range powerTicks(10, 36, 5) {
		pos := algo.CGSToAstro(t.Value)
		if pos < YMin || pos > YMax {
			continue
		}
		ticks = append(ticks, SecondaryTick{Value: t.Value, Position: pos, Label: t.Label})
	}
	return ticks
}

// setupAxes configures both primary axes as fixed log axes.
func setupAxes(p *plot.Plot) {
	p.X.Scale = plot.LogScale{}
	p.X.Tick.Marker = plot.ConstantTicks(XTicks())
	p.X.Min, p.X.Max = XMin, XMax

	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.ConstantTicks(YTicks())
	p.Y.Min, p.Y.Max = YMin, YMax

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Tick.Label.Font.Size = vg.Points(14)
		axis.Label.TextStyle.Font.Size = vg.Points(16)
	}
	p.X.Label.Text = xAxisLabel
	p.Y.Label.Text = yAxisLabel
}

// secondaryAxis draws the erg s^-1 Hz^-1 axis along the right edge of the data area.
type secondaryAxis struct {
	ticks  []SecondaryTick
	margin vg.Length // Room to the right of the data area
	line   draw.LineStyle
	label  text.Style
	title  text.Style
}

// newSecondaryAxis returns the right-hand axis, drawn within margin.
func newSecondaryAxis(p *plot.Plot, margin vg.Length) *secondaryAxis {
	label := p.Y.Tick.Label
	label.XAlign = draw.XLeft
	label.YAlign = draw.YCenter

	title := p.Y.Label.TextStyle
	title.XAlign = draw.XCenter
	title.YAlign = draw.YBottom
	title.Rotation = math.Pi / 2

	return &secondaryAxis{
		ticks:  SecondaryTicks(),
		margin: margin,
		line:   p.Y.LineStyle,
		label:  label,
		title:  title,
	}
}

// Plot implements the plot.Plotter interface.
func (a *secondaryAxis) Plot(c draw.Canvas, p *plot.Plot) {
	x := c.Max.X
	c.StrokeLine2(a.line, x, c.Min.Y, x, c.Max.Y)

	major := p.Y.Tick.Length
	minor := major / 2
	pad := vg.Points(2)
	for _, t := range a.ticks {
		y := c.Y(p.Y.Norm(t.Position))
		length := minor
		if t.Label != "" {
			length = major
		}
		c.StrokeLine2(p.Y.Tick.LineStyle, x, y, x+length, y)
		if t.Label != "" {
			c.FillText(a.label, vg.Point{X: x + length + pad, Y: y}, t.Label)
		}
	}

	center := (c.Min.Y + c.Max.Y) / 2
	c.FillText(a.title, vg.Point{X: x + a.margin - pad, Y: center}, secondaryAxisLabel)
}

package render

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// annotation is text anchored at its lower-left corner on a data coordinate.
type annotation struct {
	X, Y  float64
	Text  string
	Style text.Style
}

// annotations draws free text on the data area. Unlike plotter.Labels it
// reports no glyph boxes, so hand-placed text never changes the layout.
type annotations []annotation

// Plot implements the plot.Plotter interface.
func (as annotations) Plot(c draw.Canvas, p *plot.Plot) {
	trX, trY := p.Transforms(&c)
	for _, a := range as {
		if !plottable(a.X, a.Y) {
			continue
		}
		// Anchors outside the data area are not drawn. Every built-in label
		// is placed inside the fixed axis ranges.
		pt := vg.Point{X: trX(a.X), Y: trY(a.Y)}
		if !c.Contains(pt) {
			continue
		}
		c.FillText(a.Style, pt, a.Text)
	}
}

// textStyle returns a left/bottom anchored text style.
func textStyle(clr color.Color, size, rotationDeg float64, handler text.Handler) text.Style {
	return text.Style{
		Color:    clr,
		Font:     plotFont(size),
		Rotation: rotationDeg * math.Pi / 180,
		XAlign:   draw.XLeft,
		YAlign:   draw.YBottom,
		Handler:  handler,
	}
}

// plotFont returns the default plot font at the given size in points.
func plotFont(size float64) font.Font {
	f := plot.DefaultFont
	f.Size = vg.Points(size)
	return f
}

// plottable reports whether a point can be placed on log-log axes.
func plottable(x, y float64) bool {
	return x > 0 && y > 0 && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}

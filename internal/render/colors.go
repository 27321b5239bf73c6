package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// shortColors are single-letter color codes used by the class catalog.
var shortColors = map[string]string{
	"k": "black",
	"b": "blue",
	"r": "red",
	"g": "green",
	"c": "cyan",
	"m": "magenta",
	"y": "yellow",
	"w": "white",
}

// css4Colors are CSS Color Module Level 4 names missing from the SVG 1.1 table.
var css4Colors = map[string]string{
	"rebeccapurple": "#663399",
}

// ParseColor resolves a CSS color name, a single-letter code or a #RRGGBB hex
// string and applies the given opacity.
func ParseColor(name string, alpha float64) (color.NRGBA, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if long, ok := shortColors[name]; ok {
		name = long
	}
	if hex, ok := css4Colors[name]; ok {
		name = hex
	}

	var c color.RGBA
	if strings.HasPrefix(name, "#") {
		parsed, err := parseHex(name)
		if err != nil {
			return color.NRGBA{}, err
		}
		c = parsed
	} else {
		named, ok := colornames.Map[name]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("unknown color %q", name)
		}
		c = named
	}

	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alphaByte(alpha)}, nil
}

// MustColor is ParseColor for the built-in constants of the figure.
func MustColor(name string, alpha float64) color.NRGBA {
	c, err := ParseColor(name, alpha)
	if err != nil {
		panic(err)
	}
	return c
}

// parseHex parses #RGB and #RRGGBB strings.
func parseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// alphaByte clamps an opacity in [0, 1] to a color channel.
func alphaByte(alpha float64) uint8 {
	switch {
	case alpha <= 0:
		return 0
	case alpha >= 1:
		return 0xff
	default:
		return uint8(alpha*255 + 0.5)
	}
}

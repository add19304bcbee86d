package style

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Transparent is the fully transparent color, spelled "transparent" in configs.
var Transparent = color.RGBA{}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa (the leading # is optional)
// and the keyword "transparent".
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "transparent" {
		return Transparent, nil
	}
	hex := strings.TrimPrefix(s, "#")

	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6, 8:
	default:
		return color.RGBA{}, errors.Errorf("invalid color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "invalid color %q", s)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// HexColor formats c as #rrggbb, or #rrggbbaa when it is not opaque.
func HexColor(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// over composites c onto an opaque backdrop.
func over(c, backdrop color.RGBA) color.RGBA {
	a := float64(c.A) / 255
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x)*a + float64(y)*(1-a)))
	}
	return color.RGBA{R: mix(c.R, backdrop.R), G: mix(c.G, backdrop.G), B: mix(c.B, backdrop.B), A: 0xff}
}

// RelativeLuminance is the WCAG 2.x relative luminance of an opaque color.
func RelativeLuminance(c color.RGBA) float64 {
	channel := func(v uint8) float64 {
		s := float64(v) / 255
		if s <= 0.03928 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(c.R) + 0.7152*channel(c.G) + 0.0722*channel(c.B)
}

// ContrastRatio returns the WCAG contrast ratio of fg over bg, between 1
// and 21. Translucent colors are composited over white first.
func ContrastRatio(fg, bg color.RGBA) float64 {
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	bg = over(bg, white)
	fg = over(fg, bg)

	l1, l2 := RelativeLuminance(fg), RelativeLuminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

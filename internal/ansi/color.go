// Package ansi provides the color model and the SGR escape-code subset used
// by the terminal canvas. It interprets only the color and attribute codes
// that appear in boot-script text; cursor movement and other control
// sequences are not part of this package.
package ansi

import (
	"fmt"
	"image/color"
	"strings"
)

// RGB is a concrete 24-bit color triple.
type RGB struct {
	R, G, B uint8
}

// RGBA implements image/color.Color so an RGB can be used directly as a
// drawing source.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex converts a "#RRGGBB" string (leading '#' optional, case
// insensitive) to an RGB triple.
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("ansi: invalid hex color %q", s)
	}
	var c RGB
	if _, err := fmt.Sscanf(h, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return RGB{}, fmt.Errorf("ansi: invalid hex color %q: %w", s, err)
	}
	return c, nil
}

// MustHex is ParseHex for compile-time literals; it panics on bad input.
func MustHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ColorKind tells how a cell color is specified.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota // scheme default fg/bg
	ColorIndexed                  // one of the 16 base palette entries
	ColorRGB                      // direct 24-bit value
)

// Color is a cell color before scheme resolution. Index 0-7 selects the
// normal palette, 8-15 the bright palette.
type Color struct {
	Kind  ColorKind
	Index int
	Value RGB
}

// Indexed returns a palette-indexed color.
func Indexed(i int) Color {
	return Color{Kind: ColorIndexed, Index: i}
}

// Direct returns a direct 24-bit color.
func Direct(c RGB) Color {
	return Color{Kind: ColorRGB, Value: c}
}

// Resolve maps the color to a concrete RGB value under the given scheme.
// fg selects which scheme default applies; bold promotes normal palette
// entries to their bright counterparts, the way terminals render bold text.
func (c Color) Resolve(s *Scheme, fg, bold bool) RGB {
	switch c.Kind {
	case ColorRGB:
		return c.Value
	case ColorIndexed:
		i := c.Index
		if bold && fg && i < 8 {
			i += 8
		}
		if i >= 0 && i < 8 {
			return s.Normal[i]
		}
		if i >= 8 && i < 16 {
			return s.Bright[i-8]
		}
	}
	if fg {
		return s.DefaultFg
	}
	return s.DefaultBg
}

// Style is the attribute state carried across drawing operations.
type Style struct {
	Fg   Color
	Bg   Color
	Bold bool
}

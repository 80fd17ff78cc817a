package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a 24-bit RGB color for a screen cell.
// The zero value is ColorDefault, which leaves the terminal's own color in place.
type Color uint32

// colorSet marks a Color as carrying an explicit RGB value, so black is distinct
// from ColorDefault.
const colorSet Color = 1 << 24

// Predefined colors for game elements.
const (
	ColorDefault       Color = 0
	ColorBlack         Color = colorSet | 0x000000
	ColorRed           Color = colorSet | 0xcd3131
	ColorGreen         Color = colorSet | 0x0dbc79
	ColorYellow        Color = colorSet | 0xe5e510
	ColorBlue          Color = colorSet | 0x2472c8
	ColorMagenta       Color = colorSet | 0xbc3fbc
	ColorCyan          Color = colorSet | 0x11a8cd
	ColorWhite         Color = colorSet | 0xe5e5e5
	ColorBrightRed     Color = colorSet | 0xf14c4c
	ColorBrightGreen   Color = colorSet | 0x23d18b
	ColorBrightYellow  Color = colorSet | 0xf5f543
	ColorBrightBlue    Color = colorSet | 0x3b8eea
	ColorBrightMagenta Color = colorSet | 0xd670d6
	ColorBrightCyan    Color = colorSet | 0x29b8db
	ColorBrightWhite   Color = colorSet | 0xffffff
	ColorOrange        Color = colorSet | 0xff8700
	ColorGray          Color = colorSet | 0x8a8a8a
)

// RGB builds a color from its components.
func RGB(r, g, b uint8) Color {
	return colorSet | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// ParseHex parses a "#rrggbb" color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return ColorDefault, fmt.Errorf("core: invalid color %q: %w", s, err)
	}
	return fromColorful(c), nil
}

// MustHex is like ParseHex but panics on malformed input.
// Intended for package-level palettes.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// IsDefault reports whether c is the terminal default color.
func (c Color) IsDefault() bool {
	return c&colorSet == 0
}

// RGB returns the color components. ColorDefault reports black.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the "#rrggbb" form, or "" for ColorDefault.
func (c Color) Hex() string {
	if c.IsDefault() {
		return ""
	}
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Blend paints over on top of c with the given opacity (0..1) and returns
// the composite. A default base is treated as black.
func (c Color) Blend(over Color, alpha float64) Color {
	if over.IsDefault() {
		return c
	}
	base := c
	if base.IsDefault() {
		base = ColorBlack
	}
	alpha = ClampF(alpha, 0, 1)
	return fromColorful(base.colorful().BlendRgb(over.colorful(), alpha))
}

// Lerp interpolates between two colors in RGB space.
func Lerp(a, b Color, t float64) Color {
	return a.Blend(b, t)
}

func (c Color) colorful() colorful.Color {
	r, g, b := c.RGB()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(cc colorful.Color) Color {
	r, g, b := cc.Clamped().RGB255()
	return RGB(r, g, b)
}

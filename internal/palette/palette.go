// Package palette defines the preset annotation colours and size tiers.
package palette

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/annotator/internal/shape"
)

// Color is a named preset colour.
type Color struct {
	Name  string
	Color color.RGBA
}

// Colors are the preset colours in picker order.
var Colors = []Color{
	{"Red", color.RGBA{0xF6, 0x54, 0x4A, 0xFF}},
	{"Yellow", color.RGBA{0xFD, 0xE8, 0x2F, 0xFF}},
	{"Green", color.RGBA{0x19, 0xDC, 0x7D, 0xFF}},
	{"Blue", color.RGBA{0x1F, 0x7C, 0xF9, 0xFF}},
	{"Charcoal", color.RGBA{0x31, 0x34, 0x3F, 0xFF}},
	{"Gray", color.RGBA{0x85, 0x89, 0x9E, 0xFF}},
	{"White", color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}},
}

// Tier is one of the preset sizes. Value is what stroke shapes store as
// their size, Swatch is the picker dot diameter and Font the text size,
// all in pixels.
type Tier struct {
	Value  float64
	Swatch float64
	Font   float64
}

// Tiers are the preset sizes, smallest first.
var Tiers = []Tier{
	{Value: 3, Swatch: 8, Font: 18},
	{Value: 6, Swatch: 12, Font: 32},
	{Value: 9, Swatch: 16, Font: 46},
}

// LookupTier returns the tier with the given value.
func LookupTier(value float64) (Tier, bool) {
	for _, t := range Tiers {
		if t.Value == value {
			return t, true
		}
	}
	return Tier{}, false
}

// TierForFont returns the tier whose font size is px.
func TierForFont(px float64) (Tier, bool) {
	for _, t := range Tiers {
		if t.Font == px {
			return t, true
		}
	}
	return Tier{}, false
}

// SizeFor converts a tier value into the size stored on a shape of kind:
// the font size for text, the tier value for strokes.
func SizeFor(kind shape.Kind, value float64) (float64, bool) {
	t, ok := LookupTier(value)
	if !ok {
		return 0, false
	}
	if kind == shape.Text {
		return t.Font, true
	}
	return t.Value, true
}

// TextFont is the family name recorded on new text shapes.
const TextFont = "Hiragino Sans GB"

// Defaults returns the style a fresh tool of kind starts with.
func Defaults(kind shape.Kind) shape.Style {
	c := Colors[0].Color
	if kind == shape.Arrow || kind == shape.Rectangle {
		c = color.RGBA{0xEE, 0x51, 0x26, 0xFF}
	}
	size, _ := SizeFor(kind, Tiers[0].Value)
	return shape.Style{Size: size, Color: c}
}

// ParseColor accepts a preset name, an SVG colour name or a hex value in
// #RGB, #RRGGBB or #RRGGBBAA form.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	for _, entry := range Colors {
		if strings.EqualFold(entry.Name, name) {
			return entry.Color, nil
		}
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if strings.HasPrefix(name, "#") {
		return ParseHex(name)
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// ParseHex parses #RGB, #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{
		R: uint8(val >> 24),
		G: uint8(val >> 16),
		B: uint8(val >> 8),
		A: uint8(val),
	}, nil
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func Hex(c color.RGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// Name returns the preset name of c, or its hex form.
func Name(c color.RGBA) string {
	for _, entry := range Colors {
		if entry.Color == c {
			return entry.Name
		}
	}
	return Hex(c)
}

// Package style implements the color and style model consumed by the
// painter: a small sum-typed Color, a Style carrying colors and
// attributes, and the whitespace-separated style-string grammar used to
// build both from configuration text.
package style

import (
	"fmt"
	"strconv"
	"strings"
)

// ColorKind discriminates the representations a Color can hold.
type ColorKind int

// Color kinds.
const (
	ColorNone   ColorKind = iota // unset; inherits from the terminal default
	ColorAuto                    // explicit "auto": inherit from a supplied default Style
	ColorSyntax                  // explicit "syntax": take the color from the highlighter at paint time
	ColorNamed                   // one of the 16 standard/bright ANSI colors, Index 0-15
	ColorFixed                   // one of the 256-palette colors, Index 0-255
	ColorRGB                     // 24-bit color, R/G/B
)

// Color is a sum type over the ways a terminal color can be specified:
// a named/bright ANSI index, a 256-palette index, or 24-bit RGB.
type Color struct {
	Kind  ColorKind
	Index uint8
	R, G, B uint8
}

// namedColors maps lower-cased color names to their standard ANSI index (0-7).
// "purple" is accepted as a synonym for "magenta", matching delta's style grammar.
var namedColors = map[string]uint8{
	"black":   0,
	"red":     1,
	"green":   2,
	"yellow":  3,
	"blue":    4,
	"magenta": 5,
	"purple":  5,
	"cyan":    6,
	"white":   7,
}

// ParseColor parses a single color token per the grammar in spec §3/§4.1:
// "#rrggbb", decimal 0-255, the 9 standard names and their "bright-" variants
// (case-insensitive), and the "auto"/"syntax" sentinels.
func ParseColor(tok string) (Color, bool) {
	t := strings.ToLower(strings.TrimSpace(tok))
	switch t {
	case "":
		return Color{}, false
	case "auto":
		return Color{Kind: ColorAuto}, true
	case "syntax":
		return Color{Kind: ColorSyntax}, true
	}

	if strings.HasPrefix(t, "#") {
		r, g, b, ok := parseHex(t)
		if !ok {
			return Color{}, false
		}
		return Color{Kind: ColorRGB, R: r, G: g, B: b}, true
	}

	if n, err := strconv.Atoi(t); err == nil {
		if n < 0 || n > 255 {
			return Color{}, false
		}
		return Color{Kind: ColorFixed, Index: uint8(n)}, true
	}

	bright := false
	name := t
	if strings.HasPrefix(t, "bright-") {
		bright = true
		name = strings.TrimPrefix(t, "bright-")
	}
	if idx, ok := namedColors[name]; ok {
		if bright {
			idx += 8
		}
		return Color{Kind: ColorNamed, Index: idx}, true
	}
	return Color{}, false
}

func parseHex(s string) (r, g, b uint8, ok bool) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}

// IsSet reports whether the color carries a concrete (non-sentinel, non-empty) value.
func (c Color) IsSet() bool {
	return c.Kind == ColorNamed || c.Kind == ColorFixed || c.Kind == ColorRGB
}

// Hex renders an RGB color as "#rrggbb". Only meaningful when Kind == ColorRGB.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

package style

import (
	"strconv"

	"github.com/muesli/termenv"
)

// Render composes the final ANSI SGR-wrapped text for this style under the
// given output profile. IsOmitted suppresses the text entirely; IsRaw emits
// it byte-for-byte. Hidden is applied as a literal SGR(8) wrap since termenv
// has no builder method for it.
func (s Style) Render(p termenv.Profile, text string) string {
	if s.IsOmitted {
		return ""
	}
	if s.IsRaw {
		return text
	}

	ts := termenv.String(text)
	if s.Attrs.Has(Bold) {
		ts = ts.Bold()
	}
	if s.Attrs.Has(Dim) {
		ts = ts.Faint()
	}
	if s.Attrs.Has(Italic) {
		ts = ts.Italic()
	}
	if s.Attrs.Has(Underline) {
		ts = ts.Underline()
	}
	if s.Attrs.Has(Blink) {
		ts = ts.Blink()
	}
	if s.Attrs.Has(Reverse) {
		ts = ts.Reverse()
	}
	if s.Attrs.Has(Strikethrough) {
		ts = ts.CrossOut()
	}
	if c, ok := toTermenvColor(p, s.Foreground); ok {
		ts = ts.Foreground(c)
	}
	if c, ok := toTermenvColor(p, s.Background); ok {
		ts = ts.Background(c)
	}

	out := ts.String()
	if s.Attrs.Has(Hidden) {
		out = "\x1b[8m" + out + "\x1b[0m"
	}
	return out
}

// toTermenvColor resolves a Color into a termenv.Color under the given
// profile. ColorNone/ColorAuto/ColorSyntax carry no concrete value here --
// ColorAuto is resolved during FromString and ColorSyntax must be resolved
// by the painter before Render is called.
func toTermenvColor(p termenv.Profile, c Color) (termenv.Color, bool) {
	switch c.Kind {
	case ColorNamed, ColorFixed:
		return p.Color(strconv.Itoa(int(c.Index))), true
	case ColorRGB:
		return p.Color(c.Hex()), true
	default:
		return nil, false
	}
}

// EraseToEndOfLine returns the CSI sequence that erases from the cursor to
// the end of the line in the given background color, used by the painter's
// line_fill_method = AnsiErase option.
func EraseToEndOfLine(p termenv.Profile, bg Color) string {
	if !bg.IsSet() {
		return "\x1b[K"
	}
	prefix := termenv.String("").Background(mustColor(p, bg)).String()
	// termenv produces "<SGR>\x1b[0m" for an empty string; strip the reset so
	// the erase sequence inherits the background we just set.
	if len(prefix) >= 4 {
		prefix = prefix[:len(prefix)-4]
	}
	return prefix + "\x1b[K\x1b[0m"
}

func mustColor(p termenv.Profile, c Color) termenv.Color {
	tc, _ := toTermenvColor(p, c)
	return tc
}

package style

import "strings"

// Attrs is a bitmask of SGR text attributes.
type Attrs uint16

// Attribute bits, one per SGR text attribute, in the order of the SGR
// parameters that set them (spec §4.1).
const (
	Bold Attrs = 1 << iota
	Dim
	Italic
	Underline
	Blink
	Reverse
	Hidden
	Strikethrough
)

var attrNames = []struct {
	bit  Attrs
	name string
}{
	{Bold, "bold"},
	{Dim, "dim"},
	{Italic, "italic"},
	{Underline, "underline"},
	{Blink, "blink"},
	{Reverse, "reverse"},
	{Hidden, "hidden"},
	{Strikethrough, "strikethrough"},
}

func parseAttr(tok string) (Attrs, bool) {
	switch tok {
	case "ul": // handled as decoration elsewhere; not a text attribute synonym here
		return 0, false
	}
	for _, a := range attrNames {
		if a.name == tok {
			return a.bit, true
		}
	}
	// Common synonyms.
	switch tok {
	case "strikeout", "crossout":
		return Strikethrough, true
	case "faint":
		return Dim, true
	}
	return 0, false
}

func (a Attrs) Has(bit Attrs) bool { return a&bit != 0 }

// DecorationKind enumerates the ornament drawn around a rendered line,
// distinct from the character styling applied to the line's own text.
type DecorationKind int

// Decoration kinds.
const (
	NoDecoration DecorationKind = iota
	Box
	UnderlineDecoration
	OverlineDecoration
	UnderOverline
	BoxUnderline
	BoxOverline
	BoxUnderOver
)

// Decoration describes an ornament and the style used to draw it.
type Decoration struct {
	Kind  DecorationKind
	Inner *Style
}

// Style is the full visual description of a rendered span: colors,
// attributes, and the special sentinel flags described in spec §3.
type Style struct {
	Foreground Color
	Background Color
	Attrs      Attrs

	// IsSyntaxHighlighted means "take the foreground from the syntax
	// highlighter at paint time" -- set when Foreground.Kind == ColorSyntax.
	IsSyntaxHighlighted bool
	// IsEmph marks a style as the "changed" (emphasis) half of a pair.
	IsEmph bool
	// IsRaw means "emit the original bytes unchanged".
	IsRaw bool
	// IsOmitted means "suppress this element entirely".
	IsOmitted bool

	Decoration Decoration
}

// decorationKeyword maps the special decoration tokens extracted from a
// style string (spec §4.4) onto the bit they fold into.
var decorationKeyword = map[string]DecorationKind{
	"box":       Box,
	"ul":        UnderlineDecoration,
	"underline": UnderlineDecoration,
	"ol":        OverlineDecoration,
	"overline":  OverlineDecoration,
}

func combineDecoration(a, b DecorationKind) DecorationKind {
	has := func(k DecorationKind) bool { return a == k || b == k }
	box := has(Box)
	ul := has(UnderlineDecoration) || has(BoxUnderline) || has(UnderOverline) || has(BoxUnderOver)
	ol := has(OverlineDecoration) || has(BoxOverline) || has(UnderOverline) || has(BoxUnderOver)
	switch {
	case box && ul && ol:
		return BoxUnderOver
	case box && ul:
		return BoxUnderline
	case box && ol:
		return BoxOverline
	case ul && ol:
		return UnderOverline
	case box:
		return Box
	case ul:
		return UnderlineDecoration
	case ol:
		return OverlineDecoration
	default:
		return NoDecoration
	}
}

// extractDecorationTokens pulls box/ul/ol/plain/none tokens out of a style
// string, returning the remaining tokens and the decoration kind they imply.
func extractDecorationTokens(tokens []string) (remaining []string, kind DecorationKind) {
	kind = NoDecoration
	for _, t := range tokens {
		lt := strings.ToLower(t)
		switch lt {
		case "plain", "none":
			kind = NoDecoration
			continue
		}
		if dk, ok := decorationKeyword[lt]; ok {
			kind = combineDecoration(kind, dk)
			continue
		}
		remaining = append(remaining, t)
	}
	return remaining, kind
}

// FromString parses a style string per spec §4.4: whitespace-separated
// tokens, any order, case-insensitive, trimmed of surrounding quotes.
// Attribute keywords set Attrs; "raw"/"omit" set their flags; "syntax" as a
// foreground sets IsSyntaxHighlighted; "auto" inherits from def; up to two
// remaining tokens are colors (first foreground, second background).
// decorationStyleString, if non-empty, is itself run through this grammar
// (without nested decoration extraction) to build Decoration.Inner.
func FromString(s string, def *Style, decorationStyleString string, trueColor bool, isEmph bool) Style {
	s = strings.Trim(strings.TrimSpace(s), `"'`)
	rawTokens := strings.Fields(s)

	tokens, decoKind := extractDecorationTokens(rawTokens)

	out := Style{IsEmph: isEmph}
	var colorTokens []string

	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		switch lower {
		case "raw":
			out.IsRaw = true
			continue
		case "omit":
			out.IsOmitted = true
			continue
		case "auto":
			if def != nil {
				out.Foreground = def.Foreground
				out.Background = def.Background
			}
			continue
		}
		if bit, ok := parseAttr(lower); ok {
			out.Attrs |= bit
			continue
		}
		colorTokens = append(colorTokens, tok)
	}

	for i, tok := range colorTokens {
		lower := strings.ToLower(tok)
		if i == 0 {
			if lower == "syntax" {
				out.Foreground = Color{Kind: ColorSyntax}
				out.IsSyntaxHighlighted = true
				continue
			}
			if c, ok := ParseColor(tok); ok {
				out.Foreground = c
			}
			continue
		}
		if i == 1 {
			// "syntax" is rejected as a background color (spec §4.4).
			if lower == "syntax" {
				continue
			}
			if c, ok := ParseColor(tok); ok {
				out.Background = c
			}
		}
	}

	if !trueColor {
		out.Foreground = downsample(out.Foreground)
		out.Background = downsample(out.Background)
	}

	if decorationStyleString != "" {
		inner := FromString(decorationStyleString, nil, "", trueColor, false)
		innerToks, innerKind := extractDecorationTokens(strings.Fields(decorationStyleString))
		_ = innerToks
		if innerKind == NoDecoration {
			innerKind = Box
		}
		out.Decoration = Decoration{Kind: innerKind, Inner: &inner}
	} else if decoKind != NoDecoration {
		inner := out
		out.Decoration = Decoration{Kind: decoKind, Inner: &inner}
	}

	return out
}

// downsample approximates a 24-bit color with the 256-color palette when
// true-color output is disabled. Named and fixed colors pass through
// unchanged; only RGB colors are converted.
func downsample(c Color) Color {
	if c.Kind != ColorRGB {
		return c
	}
	return Color{Kind: ColorFixed, Index: rgbTo256(c.R, c.G, c.B)}
}

// rgbTo256 maps an RGB triple to the nearest index in the standard 256-color
// cube (16-231) using the 6x6x6 levels xterm defines, falling back to the
// grayscale ramp (232-255) when the channels are nearly equal.
func rgbTo256(r, g, b uint8) uint8 {
	if maxDiff(r, g, b) < 8 {
		gray := (int(r) + int(g) + int(b)) / 3
		if gray < 8 {
			return 16
		}
		if gray > 248 {
			return 231
		}
		return uint8(232 + (gray-8)*23/240)
	}
	toLevel := func(v uint8) int {
		// Thresholds at the midpoints between the 6 cube levels (0,95,135,175,215,255).
		switch {
		case v < 48:
			return 0
		case v < 115:
			return 1
		case v < 155:
			return 2
		case v < 195:
			return 3
		case v < 235:
			return 4
		default:
			return 5
		}
	}
	ri, gi, bi := toLevel(r), toLevel(g), toLevel(b)
	return uint8(16 + 36*ri + 6*gi + bi)
}

func maxDiff(r, g, b uint8) int {
	max := func(a, c int) int {
		if a > c {
			return a
		}
		return c
	}
	min := func(a, c int) int {
		if a < c {
			return a
		}
		return c
	}
	hi := max(int(r), max(int(g), int(b)))
	lo := min(int(r), min(int(g), int(b)))
	return hi - lo
}

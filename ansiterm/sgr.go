package ansiterm

import "github.com/fwojciec/diffview/style"

// DecodeSGR decodes a CSI ... m parameter list into a Style per the SGR
// grammar in spec §4.1. Unknown parameters are ignored; 0 or an empty
// parameter list resets to the zero Style.
func DecodeSGR(params []uint16) style.Style {
	var s style.Style
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			s = style.Style{}
		case p == 1:
			s.Attrs |= style.Bold
		case p == 2:
			s.Attrs |= style.Dim
		case p == 3:
			s.Attrs |= style.Italic
		case p == 4:
			s.Attrs |= style.Underline
		case p == 5 || p == 6:
			s.Attrs |= style.Blink
		case p == 7:
			s.Attrs |= style.Reverse
		case p == 8:
			s.Attrs |= style.Hidden
		case p == 9:
			s.Attrs |= style.Strikethrough
		case p >= 30 && p <= 37:
			s.Foreground = style.Color{Kind: style.ColorNamed, Index: uint8(p - 30)}
		case p >= 40 && p <= 47:
			s.Background = style.Color{Kind: style.ColorNamed, Index: uint8(p - 40)}
		case p >= 90 && p <= 97:
			s.Foreground = style.Color{Kind: style.ColorNamed, Index: uint8(8 + (p - 90))}
		case p >= 100 && p <= 107:
			s.Background = style.Color{Kind: style.ColorNamed, Index: uint8(8 + (p - 100))}
		case p == 38:
			c, consumed := decodeExtendedColor(params[i+1:])
			s.Foreground = c
			i += consumed
		case p == 48:
			c, consumed := decodeExtendedColor(params[i+1:])
			s.Background = c
			i += consumed
		default:
			// Unknown parameter: ignored per spec §4.1.
		}
	}
	return s
}

// decodeExtendedColor reads the "2;r;g;b" or "5;index" sub-sequence that
// follows a 38/48 parameter, returning the decoded color and the number of
// extra parameters consumed.
func decodeExtendedColor(rest []uint16) (style.Color, int) {
	if len(rest) == 0 {
		return style.Color{}, 0
	}
	switch rest[0] {
	case 2:
		if len(rest) >= 4 {
			return style.Color{Kind: style.ColorRGB, R: byte(rest[1]), G: byte(rest[2]), B: byte(rest[3])}, 4
		}
		return style.Color{}, len(rest)
	case 5:
		if len(rest) >= 2 {
			return style.Color{Kind: style.ColorFixed, Index: byte(rest[1])}, 2
		}
		return style.Color{}, len(rest)
	default:
		return style.Color{}, 1
	}
}

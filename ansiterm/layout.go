package ansiterm

import (
	"strings"

	"github.com/fwojciec/diffview/style"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Truncate walks s and, if its visible width exceeds targetWidth, cuts it at
// the grapheme boundary whose cumulative width first exceeds
// targetWidth-width(tail), appends any pending escape elements plus tail,
// and -- if a non-reset SGR style was active at the cut point -- appends a
// closing reset so the emitted sequence is never left unterminated
// (spec §4.1 Truncate).
func Truncate(s string, targetWidth int, tail string) string {
	if targetWidth < 0 {
		targetWidth = 0
	}
	if MeasureWidth(s) <= targetWidth {
		return s
	}

	tailWidth := MeasureWidth(tail)
	budget := targetWidth - tailWidth
	if budget < 0 {
		budget = 0
	}

	var out strings.Builder
	width := 0
	activeStyle := false

elements:
	for _, el := range Elements(s) {
		switch el.Kind {
		case CSIKind, ESCKind, OSCKind:
			seq := s[el.Start:el.End]
			out.WriteString(seq)
			if el.Kind == CSIKind && strings.HasSuffix(seq, "m") {
				activeStyle = !isResetSGR(seq)
			}
			continue
		}

		text := s[el.Start:el.End]
		g := uniseg.NewGraphemes(text)
		for g.Next() {
			cluster := g.Str()
			w := runewidth.StringWidth(cluster)
			if width+w > budget {
				break elements
			}
			out.WriteString(cluster)
			width += w
		}
	}

	out.WriteString(tail)
	if activeStyle {
		out.WriteString("\x1b[0m")
	}
	return out.String()
}

// isResetSGR reports whether an SGR sequence resets all attributes (empty
// or explicit parameter 0).
func isResetSGR(seq string) bool {
	inner := strings.TrimSuffix(strings.TrimPrefix(seq, "\x1b["), "m")
	return inner == "" || inner == "0"
}

// Slice returns the suffix of s starting at the startCol-th visible column,
// preserving every ANSI element in the string (spec §4.1
// ansi_preserving_slice). Escape elements before the start column are kept
// (they establish the style in effect at the slice point); text before the
// start column is dropped.
func Slice(s string, startCol int) string {
	if startCol <= 0 {
		return s
	}
	var out strings.Builder
	col := 0
	for _, el := range Elements(s) {
		if el.Kind != TextKind {
			out.WriteString(s[el.Start:el.End])
			continue
		}
		text := s[el.Start:el.End]
		g := uniseg.NewGraphemes(text)
		for g.Next() {
			cluster := g.Str()
			w := runewidth.StringWidth(cluster)
			if col >= startCol {
				out.WriteString(cluster)
			}
			col += w
		}
	}
	return out.String()
}

// FirstStyle consumes elements of s until the first CSI sequence is
// observed and returns its Style: the decoded style for an SGR sequence,
// the zero Style for any other CSI. Returns false if s contains no CSI.
func FirstStyle(s string) (style.Style, bool) {
	for _, el := range Elements(s) {
		if el.Kind == CSIKind {
			return el.Style, true
		}
	}
	return style.Style{}, false
}

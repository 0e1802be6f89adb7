package ansiterm

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// ExpandFixed replaces every tab with a fixed-width run of spaces,
// regardless of column position (spec §4.2 fixed expansion).
func ExpandFixed(s string, width int) string {
	if width <= 0 {
		width = 4
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", width))
}

// ExpandTabstop walks graphemes tracking the output column; on a tab it
// emits enough spaces to reach the next tabstop boundary, and on any other
// grapheme emits it unchanged and advances the column by its display width
// (spec §4.2 tabstop expansion).
func ExpandTabstop(s string, width int) string {
	if width <= 0 {
		width = 8
	}
	var out strings.Builder
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		cluster := g.Str()
		if cluster == "\t" {
			n := width - (col % width)
			out.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		out.WriteString(cluster)
		col += runewidth.StringWidth(cluster)
	}
	return out.String()
}

// ExpandTabstopANSI is the ANSI-aware variant of ExpandTabstop: escape
// elements are passed through without advancing the column, and tabs within
// text spans are expanded against the tracked column.
func ExpandTabstopANSI(s string, width int) string {
	if width <= 0 {
		width = 8
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
			if cluster == "\t" {
				n := width - (col % width)
				out.WriteString(strings.Repeat(" ", n))
				col += n
				continue
			}
			out.WriteString(cluster)
			col += runewidth.StringWidth(cluster)
		}
	}
	return out.String()
}

// RemovePrefixAndExpand drops the first n grapheme columns of line (the
// unified-diff marker characters) then tab-expands the remainder, used by
// the painter before handing a line to the highlighter (spec §4.2).
func RemovePrefixAndExpand(n int, line string, tabWidth int) string {
	if n <= 0 {
		return ExpandTabstopANSI(line, tabWidth)
	}
	var out strings.Builder
	dropped := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		if dropped < n {
			dropped++
			continue
		}
		out.WriteString(g.Str())
	}
	return ExpandTabstopANSI(out.String(), tabWidth)
}

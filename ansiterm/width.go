package ansiterm

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// MeasureWidth returns the terminal display width of s, ignoring all
// escape/control elements and accounting for double-width (CJK) graphemes
// and zero-width combining marks (spec §4.1, §8 Unicode boundary behavior).
func MeasureWidth(s string) int {
	total := 0
	for _, el := range Elements(s) {
		if el.Kind != TextKind {
			continue
		}
		total += graphemeWidth(s[el.Start:el.End])
	}
	return total
}

// graphemeWidth sums the display width of each grapheme cluster in text,
// using uniseg for cluster boundaries and runewidth for the East-Asian-aware
// per-cluster width.
func graphemeWidth(text string) int {
	total := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		w := runewidth.StringWidth(cluster)
		total += w
	}
	return total
}

// Strip returns the visible text of s with all ANSI elements removed.
func Strip(s string) string {
	var b []byte
	for _, el := range Elements(s) {
		if el.Kind == TextKind {
			b = append(b, s[el.Start:el.End]...)
		}
	}
	return string(b)
}

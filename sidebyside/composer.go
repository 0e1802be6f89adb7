package sidebyside

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/fwojciec/diffview/ansiterm"
	"github.com/fwojciec/diffview/style"
)

// Counters tracks the independently advancing minus/plus line-number
// columns (spec §4.9: "minus-side advances on HunkMinus and HunkZero;
// plus-side advances on HunkPlus and HunkZero. Wrapped continuation lines
// do not advance either counter.").
type Counters struct {
	Minus int
	Plus  int
}

// AdvanceMinus records that a minus-side line was emitted and returns its
// new 1-based line number.
func (c *Counters) AdvanceMinus() int {
	c.Minus++
	return c.Minus
}

// AdvancePlus records that a plus-side line was emitted and returns its new
// 1-based line number.
func (c *Counters) AdvancePlus() int {
	c.Plus++
	return c.Plus
}

// PadToWidth right-pads s to exactly width visible columns, either with
// spaces or with an ANSI erase-to-end-of-line in bg (spec §6
// "line_fill_method").
func PadToWidth(s string, width int, ansiErase bool, profile termenv.Profile, bg style.Color) string {
	w := ansiterm.MeasureWidth(s)
	if w >= width {
		return s
	}
	if ansiErase {
		return s + style.EraseToEndOfLine(profile, bg)
	}
	return s + strings.Repeat(" ", width-w)
}

// ComposeRow truncates and pads the left/right panels to panelWidth and
// joins them with their gutters into one output row (spec §4.9 steps 4-5).
func ComposeRow(leftGutter, left, rightGutter, right string, panelWidth int, ansiErase bool, profile termenv.Profile, bg style.Color) string {
	left = ansiterm.Truncate(left, panelWidth, "")
	right = ansiterm.Truncate(right, panelWidth, "")
	left = PadToWidth(left, panelWidth, ansiErase, profile, bg)
	right = PadToWidth(right, panelWidth, ansiErase, profile, bg)
	return leftGutter + left + rightGutter + right + "\n"
}

// Package sidebyside implements the ANSI-aware line wrapping and two-panel
// composition of spec §4.8-4.9: wrapping an over-wide painted line to at
// most K visual rows, and joining a minus/plus pair into one gutter-
// prefixed row per panel.
package sidebyside

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/fwojciec/diffview/ansiterm"
	"github.com/fwojciec/diffview/style"
)

// WrapOptions configures Wrap (spec §6 "Wrapping").
type WrapOptions struct {
	Width                 int
	MaxLines              int // 0 = unlimited
	ContinuationMarker    string
	RightWrapMarker       string
	RightAlignMarker      string
	UseWrapRightPermille  int // 0..1000
	HintStyle             style.Style
	Profile               termenv.Profile
}

// Wrap splits an already-styled (ANSI-containing) line into rows of visible
// width at most Width, inserting a continuation marker at each split point
// (spec §4.8). If the line already fits, it is returned as the sole
// element of a length-1 slice.
func Wrap(line string, opt WrapOptions) []string {
	line = trimTrailingNewline(line)
	if opt.Width <= 0 || ansiterm.MeasureWidth(line) <= opt.Width {
		return []string{line}
	}

	markerWidth := ansiterm.MeasureWidth(opt.ContinuationMarker)
	budget := opt.Width - markerWidth
	if budget < 1 {
		budget = 1
	}

	var heads []string
	remaining := line
	for {
		if opt.MaxLines > 0 && len(heads)+1 >= opt.MaxLines {
			break
		}
		if ansiterm.MeasureWidth(remaining) <= opt.Width {
			break
		}
		head := ansiterm.Truncate(remaining, budget, "")
		hw := ansiterm.MeasureWidth(head)
		remaining = ansiterm.Slice(remaining, hw)
		heads = append(heads, head)
	}

	lines := make([]string, 0, len(heads)+1)
	for _, h := range heads {
		lines = append(lines, h+opt.HintStyle.Render(opt.Profile, opt.ContinuationMarker))
	}
	lines = append(lines, remaining)

	// Right-align optimization (spec §4.8 step 5): applies only when
	// wrapping produced exactly one continuation line.
	if len(heads) == 1 {
		contWidth := ansiterm.MeasureWidth(ansiterm.Strip(remaining))
		threshold := float64(opt.Width) * float64(opt.UseWrapRightPermille) / 1000
		if float64(contWidth) < threshold {
			lines[0] = heads[0] + opt.HintStyle.Render(opt.Profile, opt.RightWrapMarker)
			pad := opt.Width - contWidth - ansiterm.MeasureWidth(opt.RightAlignMarker)
			if pad < 0 {
				pad = 0
			}
			lines[1] = opt.HintStyle.Render(opt.Profile, opt.RightAlignMarker) + strings.Repeat(" ", pad) + remaining
		}
	}

	return lines
}

// trimTrailingNewline treats a trailing "\n" as zero-width so a line that
// just fits with its newline is not spuriously wrapped (spec §4.8).
func trimTrailingNewline(s string) string {
	return strings.TrimSuffix(s, "\n")
}

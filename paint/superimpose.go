package paint

import (
	"github.com/fwojciec/diffview/highlight"
	"github.com/fwojciec/diffview/style"
)

// styledRun is one contiguous run of text sharing a single Style; it is the
// common currency both the diff-section list and the syntax-section list
// are converted into before superimposing (spec §3 "Style-section list").
type styledRun struct {
	Style style.Style
	Text  string
}

func toRuns(secs []highlight.Section, fallback string) []styledRun {
	if len(secs) == 0 {
		return []styledRun{{style.Style{IsSyntaxHighlighted: true}, fallback}}
	}
	out := make([]styledRun, len(secs))
	for i, s := range secs {
		out[i] = styledRun{s.Style, s.Text}
	}
	return out
}

// superimpose walks two parallel run lists covering the same underlying
// text and splits at each boundary from either side, composing a final
// style per spec §4.6 step 4: "take the diff section's background/
// attributes and, if is_syntax_highlighted, the syntax section's
// foreground; else the diff section's foreground."
func superimpose(diff, syntax []styledRun) []styledRun {
	if len(diff) == 0 {
		return syntax
	}
	if len(syntax) == 0 {
		return diff
	}

	var out []styledRun
	di, si := 0, 0
	dOff, sOff := 0, 0
	for di < len(diff) && si < len(syntax) {
		d, s := diff[di], syntax[si]
		dRemain := len(d.Text) - dOff
		sRemain := len(s.Text) - sOff
		n := dRemain
		if sRemain < n {
			n = sRemain
		}
		if n <= 0 {
			break
		}
		text := d.Text[dOff : dOff+n]
		out = append(out, styledRun{Style: composeStyle(d.Style, s.Style), Text: text})
		dOff += n
		sOff += n
		if dOff == len(d.Text) {
			di++
			dOff = 0
		}
		if sOff == len(s.Text) {
			si++
			sOff = 0
		}
	}
	// Leftover text belongs to whichever side still has some (can only
	// happen if the two run lists disagree on total length, which should
	// not occur for well-formed inputs; include it rather than drop it).
	for ; di < len(diff); di++ {
		if dOff < len(diff[di].Text) {
			out = append(out, styledRun{diff[di].Style, diff[di].Text[dOff:]})
			dOff = 0
		}
	}
	for ; si < len(syntax); si++ {
		if sOff < len(syntax[si].Text) {
			out = append(out, styledRun{syntax[si].Style, syntax[si].Text[sOff:]})
			sOff = 0
		}
	}
	return out
}

func composeStyle(diff, syntax style.Style) style.Style {
	final := diff
	final.IsSyntaxHighlighted = false
	if diff.IsSyntaxHighlighted {
		final.Foreground = syntax.Foreground
	}
	return final
}

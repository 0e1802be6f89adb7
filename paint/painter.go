// Package paint implements the buffered painter of spec §4.6: it holds
// minus/plus runs from the state machine, and at each flush point runs the
// pairing, emphasis, and syntax-highlighting pipeline before writing styled
// output to the sink. When Config.SideBySide is set it composes each
// aligned pair into a two-panel row instead (spec §4.9).
package paint

import (
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/fwojciec/diffview/align"
	"github.com/fwojciec/diffview/ansiterm"
	"github.com/fwojciec/diffview/classify"
	"github.com/fwojciec/diffview/emphasis"
	"github.com/fwojciec/diffview/highlight"
	"github.com/fwojciec/diffview/sidebyside"
	"github.com/fwojciec/diffview/style"
)

// Config bundles the style and layout options the painter needs from the
// collaborator-owned Config record (spec §6).
type Config struct {
	MinusStyle, MinusEmphStyle, MinusNonEmphStyle style.Style
	PlusStyle, PlusEmphStyle, PlusNonEmphStyle    style.Style
	ZeroStyle                                     style.Style
	HunkHeaderStyle                               style.Style
	InlineHintStyle                               style.Style

	KeepPlusMinusMarkers                  bool
	BackgroundColorExtendsToTerminalWidth bool
	LineFillAnsiErase                     bool
	Width                                  int
	TabWidth                               int
	MaxLineDistance                        float64
	TokenizationRegex                      string
	TrueColor                              bool
	Language                               string

	SideBySide              bool
	PanelWidth              int
	LeftLineNumberFormat    string
	RightLineNumberFormat   string
	WrapContinuationMarker  string
	WrapRightMarker         string
	WrapRightAlignMarker    string
	UseWrapRightPermille    int
	MaxWrapLines            int
}

type bufLine struct {
	text string
	st   classify.State
}

// maxBufferedLines bounds how many minus or plus lines accumulate before a
// flush is forced (spec §3 "buffers are flushed... whenever the buffer size
// exceeds a threshold"), so a pathological hunk with a very long run of
// consecutive additions or deletions can't buffer unbounded memory.
const maxBufferedLines = 4096

// Painter implements classify.Painter.
type Painter struct {
	cfg     Config
	sink    io.Writer
	profile termenv.Profile
	emph    *emphasis.Engine
	hl      highlight.Highlighter

	minusBuf []bufLine
	plusBuf  []bufLine

	sbs sidebyside.Counters
}

// New constructs a Painter writing to sink. hl may be nil, in which case
// highlight.Plain{} is used (no syntax coloring).
func New(sink io.Writer, cfg Config, hl highlight.Highlighter) (*Painter, error) {
	e, err := emphasis.NewEngine(cfg.TokenizationRegex, cfg.MaxLineDistance)
	if err != nil {
		return nil, err
	}
	if hl == nil {
		hl = highlight.Plain{}
	}
	profile := termenv.ANSI256
	if cfg.TrueColor {
		profile = termenv.TrueColor
	}
	return &Painter{cfg: cfg, sink: sink, profile: profile, emph: e, hl: hl}, nil
}

// SetLanguage changes the language tag passed to the highlighter for
// subsequent lines (the CLI driver calls this whenever it starts a new
// file's hunks).
func (p *Painter) SetLanguage(lang string) { p.cfg.Language = lang }

func (p *Painter) expandTabs(s string) string {
	w := p.cfg.TabWidth
	if w <= 0 {
		w = 4
	}
	return ansiterm.ExpandTabstop(s, w)
}

// BufferMinus implements classify.Painter.
func (p *Painter) BufferMinus(line string, st classify.State) {
	p.minusBuf = append(p.minusBuf, bufLine{p.expandTabs(line), st})
	if len(p.minusBuf) >= maxBufferedLines {
		p.Flush()
	}
}

// BufferPlus implements classify.Painter.
func (p *Painter) BufferPlus(line string, st classify.State) {
	p.plusBuf = append(p.plusBuf, bufLine{p.expandTabs(line), st})
	if len(p.plusBuf) >= maxBufferedLines {
		p.Flush()
	}
}

// PaintZeroLine implements classify.Painter.
func (p *Painter) PaintZeroLine(line string, st classify.State) {
	text := p.expandTabs(line)
	rendered := p.renderWhole(text, " ", p.cfg.ZeroStyle)
	if p.cfg.SideBySide {
		nm := p.sbs.AdvanceMinus()
		np := p.sbs.AdvancePlus()
		p.writeSideBySideRow(rendered, rendered, &nm, &np)
		return
	}
	p.write(rendered)
}

// Flush implements classify.Painter (spec §4.6 "Flush algorithm").
func (p *Painter) Flush() {
	if len(p.minusBuf) == 0 && len(p.plusBuf) == 0 {
		return
	}
	minus, plus := p.minusBuf, p.plusBuf
	p.minusBuf, p.plusBuf = nil, nil

	if p.cfg.SideBySide {
		p.flushSideBySide(minus, plus)
		return
	}
	p.flushUnified(minus, plus)
}

func (p *Painter) flushUnified(minus, plus []bufLine) {
	if len(minus) == 0 || len(plus) == 0 {
		for _, l := range minus {
			p.write(p.renderWhole(l.text, "-", p.cfg.MinusStyle))
		}
		for _, l := range plus {
			p.write(p.renderWhole(l.text, "+", p.cfg.PlusStyle))
		}
		return
	}

	cost := func(i, j int) float64 {
		return p.emph.NormalizedDistance(minus[i].text, plus[j].text)
	}
	pairs := align.Align(len(minus), len(plus), cost)

	for _, pr := range pairs {
		switch {
		case pr.Minus != align.None && pr.Plus != align.None:
			m, pl := minus[pr.Minus].text, plus[pr.Plus].text
			minusSecs, plusSecs := p.emph.Infer(m, pl)
			p.write(p.renderEmph(m, "-", p.cfg.MinusNonEmphStyle, p.cfg.MinusEmphStyle, minusSecs))
			p.write(p.renderEmph(pl, "+", p.cfg.PlusNonEmphStyle, p.cfg.PlusEmphStyle, plusSecs))
		case pr.Minus != align.None:
			p.write(p.renderWhole(minus[pr.Minus].text, "-", p.cfg.MinusStyle))
		case pr.Plus != align.None:
			p.write(p.renderWhole(plus[pr.Plus].text, "+", p.cfg.PlusStyle))
		}
	}
}

func (p *Painter) flushSideBySide(minus, plus []bufLine) {
	if len(minus) == 0 || len(plus) == 0 {
		for _, l := range minus {
			left := p.renderWhole(l.text, "-", p.cfg.MinusStyle)
			nm := p.sbs.AdvanceMinus()
			p.writeSideBySideRow(left, "", &nm, nil)
		}
		for _, l := range plus {
			right := p.renderWhole(l.text, "+", p.cfg.PlusStyle)
			np := p.sbs.AdvancePlus()
			p.writeSideBySideRow("", right, nil, &np)
		}
		return
	}

	cost := func(i, j int) float64 {
		return p.emph.NormalizedDistance(minus[i].text, plus[j].text)
	}
	pairs := align.Align(len(minus), len(plus), cost)

	for _, pr := range pairs {
		var left, right string
		var nm, np *int
		switch {
		case pr.Minus != align.None && pr.Plus != align.None:
			m, pl := minus[pr.Minus].text, plus[pr.Plus].text
			minusSecs, plusSecs := p.emph.Infer(m, pl)
			left = p.renderEmph(m, "-", p.cfg.MinusNonEmphStyle, p.cfg.MinusEmphStyle, minusSecs)
			right = p.renderEmph(pl, "+", p.cfg.PlusNonEmphStyle, p.cfg.PlusEmphStyle, plusSecs)
			n1, n2 := p.sbs.AdvanceMinus(), p.sbs.AdvancePlus()
			nm, np = &n1, &n2
		case pr.Minus != align.None:
			left = p.renderWhole(minus[pr.Minus].text, "-", p.cfg.MinusStyle)
			n1 := p.sbs.AdvanceMinus()
			nm = &n1
		case pr.Plus != align.None:
			right = p.renderWhole(plus[pr.Plus].text, "+", p.cfg.PlusStyle)
			n2 := p.sbs.AdvancePlus()
			np = &n2
		}
		p.writeSideBySideRow(left, right, nm, np)
	}
}

// renderWhole renders a hunk-body line with no emphasis: the diff style
// superimposed with syntax highlighting, marker-prefixed.
func (p *Painter) renderWhole(text, marker string, base style.Style) string {
	syntax := toRuns(p.hl.Highlight(p.cfg.Language, text), text)
	diff := []styledRun{{base, text}}
	return p.renderRuns(marker, superimpose(diff, syntax))
}

// renderEmph renders a hunk-body line that was matched to a counterpart,
// with its inferred emphasis sections folded in as the diff-side runs.
func (p *Painter) renderEmph(text, marker string, nonEmph, emphStyle style.Style, sections []emphasis.Section) string {
	syntax := toRuns(p.hl.Highlight(p.cfg.Language, text), text)
	diff := make([]styledRun, 0, len(sections))
	for _, s := range sections {
		st := nonEmph
		if s.Kind == emphasis.Changed {
			st = emphStyle
		}
		diff = append(diff, styledRun{st, s.Text})
	}
	if len(diff) == 0 {
		diff = []styledRun{{nonEmph, text}}
	}
	return p.renderRuns(marker, superimpose(diff, syntax))
}

func (p *Painter) renderRuns(marker string, runs []styledRun) string {
	m := marker
	if !p.cfg.KeepPlusMinusMarkers {
		m = " "
	}
	var b strings.Builder
	b.WriteString(m)
	for _, r := range runs {
		b.WriteString(r.Style.Render(p.profile, r.Text))
	}
	return b.String()
}

// write pads a fully rendered unified-mode line to the configured width (if
// requested) and writes it, followed by a newline.
func (p *Painter) write(rendered string) {
	io.WriteString(p.sink, rendered)
	if p.cfg.BackgroundColorExtendsToTerminalWidth && p.cfg.Width > 0 {
		width := ansiterm.MeasureWidth(rendered)
		if pad := p.cfg.Width - width; pad > 0 {
			if p.cfg.LineFillAnsiErase {
				io.WriteString(p.sink, style.EraseToEndOfLine(p.profile, style.Color{}))
			} else {
				io.WriteString(p.sink, strings.Repeat(" ", pad))
			}
		}
	}
	io.WriteString(p.sink, "\n")
}

// writeSideBySideRow wraps and composes one aligned pair into one or more
// two-panel output rows (spec §4.9).
func (p *Painter) writeSideBySideRow(leftPanel, rightPanel string, nm, np *int) {
	leftGutter := sidebyside.FormatGutter(p.cfg.LeftLineNumberFormat, nm, np)
	rightGutter := sidebyside.FormatGutter(p.cfg.RightLineNumberFormat, nm, np)

	wrapOpt := sidebyside.WrapOptions{
		Width:                p.cfg.PanelWidth,
		MaxLines:             p.cfg.MaxWrapLines,
		ContinuationMarker:   p.cfg.WrapContinuationMarker,
		RightWrapMarker:      p.cfg.WrapRightMarker,
		RightAlignMarker:     p.cfg.WrapRightAlignMarker,
		UseWrapRightPermille: p.cfg.UseWrapRightPermille,
		HintStyle:            p.cfg.InlineHintStyle,
		Profile:              p.profile,
	}
	leftRows := sidebyside.Wrap(leftPanel, wrapOpt)
	rightRows := sidebyside.Wrap(rightPanel, wrapOpt)

	n := len(leftRows)
	if len(rightRows) > n {
		n = len(rightRows)
	}
	for i := 0; i < n; i++ {
		var l, r string
		if i < len(leftRows) {
			l = leftRows[i]
		}
		if i < len(rightRows) {
			r = rightRows[i]
		}
		lg, rg := leftGutter, rightGutter
		if i > 0 {
			lg = blankGutter(leftGutter)
			rg = blankGutter(rightGutter)
		}
		row := sidebyside.ComposeRow(lg, l, rg, r, p.cfg.PanelWidth, p.cfg.LineFillAnsiErase, p.profile, style.Color{})
		io.WriteString(p.sink, row)
	}
}

func blankGutter(g string) string {
	return strings.Repeat(" ", ansiterm.MeasureWidth(g))
}

// EmitHunkHeader implements classify.Painter (spec §4.7).
func (p *Painter) EmitHunkHeader(info classify.HunkHeaderInfo, raw string) {
	io.WriteString(p.sink, "\n")
	line := p.cfg.HunkHeaderStyle.Render(p.profile, info.CodeFragment)
	io.WriteString(p.sink, line)
	io.WriteString(p.sink, "\n")
}

// EmitMergeConflictLine implements classify.Painter.
func (p *Painter) EmitMergeConflictLine(line string, side classify.MergeSide) {
	st := p.cfg.ZeroStyle
	switch side {
	case classify.Ours:
		st = p.cfg.MinusStyle
	case classify.Theirs:
		st = p.cfg.PlusStyle
	}
	io.WriteString(p.sink, st.Render(p.profile, line))
	io.WriteString(p.sink, "\n")
}

// Emit implements classify.Painter: lines the machine has already fully
// formatted itself (file/commit descriptions, submodule summaries) are
// written through unstyled.
func (p *Painter) Emit(line string) {
	io.WriteString(p.sink, line)
	io.WriteString(p.sink, "\n")
}

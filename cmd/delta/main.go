// Command delta is the core streaming diff pretty-printer of spec §1: it
// reads a unified diff on stdin and writes a colorized, optionally
// side-by-side rendering to stdout. Configuration is resolved once from
// flags at startup into an immutable record, matching the ambient-stack
// decision in SPEC_FULL.md (stdlib flag, no config-layering library).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/diffview/chroma"
	"github.com/fwojciec/diffview/classify"
	"github.com/fwojciec/diffview/highlight"
	"github.com/fwojciec/diffview/paint"
	"github.com/fwojciec/diffview/theme"
)

func main() {
	cfg := parseFlags(os.Args[1:])
	if err := run(os.Stdin, os.Stdout, cfg); err != nil {
		// A broken output pipe (e.g. the reader of a pager quit early) is a
		// clean shutdown, not a failure (spec §5 "Cancellation").
		if isBrokenPipe(err) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "delta:", err)
		os.Exit(1)
	}
}

// run drives the whole pipeline: it owns nothing but the painter, the
// state machine, and the line reader, per spec §5's single-threaded,
// synchronous scheduling model.
func run(stdin io.Reader, stdout io.Writer, cfg cliConfig) error {
	out := bufio.NewWriterSize(stdout, 64*1024)

	hl := highlightFor(cfg)
	p, err := paint.New(out, cfg.paint, hl)
	if err != nil {
		return fmt.Errorf("configuring painter: %w", err)
	}
	m := classify.NewMachine(p)
	detector := chroma.NewDetector()

	var lastPath string
	reader := bufio.NewReaderSize(stdin, 64*1024)
	for {
		line, err := readLine(reader)
		if line != "" || err == nil {
			m.Process(line)
			if path := m.CurrentPath(); path != "" && path != lastPath {
				lastPath = path
				p.SetLanguage(detector.DetectFromPath(path))
			}
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("reading input: %w", err)
		}
	}
	m.Flush()

	return out.Flush()
}

// readLine reads one LF-terminated line, stripping the trailing "\n" but
// preserving a trailing "\r" so that CRLF input round-trips byte-for-byte
// in the minus/plus prefix (spec §6 "Input").
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.EOF
		}
		return line, io.EOF
	}
	if err != nil {
		return "", err
	}
	return line[:len(line)-1], nil
}

func highlightFor(cfg cliConfig) highlight.Highlighter {
	if cfg.noSyntaxHighlight {
		return highlight.Plain{}
	}
	return highlight.NewChroma(theme.ChromaPalette(!cfg.light))
}

type cliConfig struct {
	paint             paint.Config
	light             bool
	noSyntaxHighlight bool
}

func parseFlags(args []string) cliConfig {
	fs := flag.NewFlagSet("delta", flag.ExitOnError)

	light := fs.Bool("light", false, "use a light background theme instead of the default dark one")
	sideBySide := fs.Bool("side-by-side", false, "display minus/plus runs as two side-by-side panels")
	width := fs.Int("width", 0, "target output width; 0 means unbounded/variable")
	tabWidth := fs.Int("tab-width", 4, "number of columns a tab expands to")
	trueColor := fs.Bool("true-color", true, "emit 24-bit RGB colors instead of a 256-color approximation")
	keepMarkers := fs.Bool("keep-plus-minus-markers", true, "keep the leading -/+ marker instead of replacing it with a space")
	bgFill := fs.Bool("background-color-extends-to-terminal-width", false, "right-pad/erase each line's background to the full width")
	ansiErase := fs.Bool("line-fill-ansi-erase", false, "use an ANSI erase-to-end-of-line instead of space padding for background fill")
	maxLineDistance := fs.Float64("max-line-distance", 0.3, "edit-distance threshold above which a minus/plus pair falls back to whole-line styling")
	tokenRegex := fs.String("tokenization-regex", "", "regex used to tokenize lines for intra-line emphasis; empty uses the default")
	noHighlight := fs.Bool("no-syntax-highlight", false, "disable syntax highlighting of hunk bodies")
	leftFormat := fs.String("line-numbers-left-format", "{nm:>4}┊", "line-number gutter template for the left (minus) panel")
	rightFormat := fs.String("line-numbers-right-format", "{np:>4}┊", "line-number gutter template for the right (plus) panel")
	wrapLeft := fs.String("wrap-left-symbol", "↵", "continuation marker appended to a wrapped line's first row")
	wrapRight := fs.String("wrap-right-symbol", "↴", "continuation marker used by the right-align wrap optimization")
	wrapRightPrefix := fs.String("wrap-right-prefix-symbol", "↳", "marker prepended to a right-aligned wrap continuation")
	wrapRightPermille := fs.Int("use-wrap-right-permille", 370, "right-align a lone wrap continuation when it is narrower than this permille of the panel width")
	maxLines := fs.Int("max-line-length", 0, "maximum number of wrapped rows per panel line; 0 is unlimited")

	_ = fs.Parse(args)

	t := theme.DarkTheme()
	if *light {
		t = theme.LightTheme()
	}

	panelWidth := *width
	if *sideBySide && panelWidth > 0 {
		// Each panel gets half the configured total width, minus the gutter;
		// the gutter width itself is derived from the format strings at
		// render time, so this is a conservative split.
		panelWidth = panelWidth/2 - 6
		if panelWidth < 1 {
			panelWidth = 1
		}
	}

	return cliConfig{
		light:             *light,
		noSyntaxHighlight: *noHighlight,
		paint: paint.Config{
			MinusStyle:        t.MinusStyle,
			MinusEmphStyle:    t.MinusEmphStyle,
			MinusNonEmphStyle: t.MinusNonEmphStyle,
			PlusStyle:         t.PlusStyle,
			PlusEmphStyle:     t.PlusEmphStyle,
			PlusNonEmphStyle:  t.PlusNonEmphStyle,
			ZeroStyle:         t.ZeroStyle,
			HunkHeaderStyle:   t.HunkHeaderStyle,
			InlineHintStyle:   t.InlineHintStyle,

			KeepPlusMinusMarkers:                  *keepMarkers,
			BackgroundColorExtendsToTerminalWidth: *bgFill,
			LineFillAnsiErase:                     ansiEraseOK(*ansiErase, *bgFill),
			Width:                                 *width,
			TabWidth:                              *tabWidth,
			MaxLineDistance:                       *maxLineDistance,
			TokenizationRegex:                     *tokenRegex,
			TrueColor:                             *trueColor,

			SideBySide:             *sideBySide,
			PanelWidth:             panelWidth,
			LeftLineNumberFormat:   *leftFormat,
			RightLineNumberFormat:  *rightFormat,
			WrapContinuationMarker: *wrapLeft,
			WrapRightMarker:        *wrapRight,
			WrapRightAlignMarker:   *wrapRightPrefix,
			UseWrapRightPermille:   *wrapRightPermille,
			MaxWrapLines:           *maxLines,
		},
	}
}

func ansiEraseOK(ansiErase, bgFill bool) bool {
	return ansiErase && bgFill
}

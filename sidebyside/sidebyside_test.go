package sidebyside

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/fwojciec/diffview/ansiterm"
	"github.com/fwojciec/diffview/style"
)

func TestWrapNoopWhenFits(t *testing.T) {
	lines := Wrap("short line", WrapOptions{Width: 40})
	if len(lines) != 1 || lines[0] != "short line" {
		t.Fatalf("expected no-op wrap, got %+v", lines)
	}
}

func TestWrapSplitsLongLineIntoRowsWithinBudget(t *testing.T) {
	line := strings.Repeat("x", 80)
	opt := WrapOptions{Width: 40, ContinuationMarker: ">", Profile: termenv.Ascii}
	lines := Wrap(line, opt)
	if len(lines) < 2 {
		t.Fatalf("expected at least 2 rows, got %d", len(lines))
	}
	for _, l := range lines {
		if w := ansiterm.MeasureWidth(l); w > 41 {
			t.Fatalf("row exceeds width+1 budget: width=%d line=%q", w, l)
		}
	}
}

func TestWrapWidthOneFitsOnlyMarker(t *testing.T) {
	line := strings.Repeat("x", 5)
	opt := WrapOptions{Width: 1, ContinuationMarker: ">", Profile: termenv.Ascii}
	lines := Wrap(line, opt)
	for _, l := range lines[:len(lines)-1] {
		if ansiterm.MeasureWidth(l) > 2 {
			t.Fatalf("expected at most one real char plus marker per line, got %q", l)
		}
	}
}

func TestFormatGutterPlaceholders(t *testing.T) {
	nm, np := 12, 34
	got := FormatGutter("{nm:>4} {np:<4}", &nm, &np)
	if got != "  12 34  " {
		t.Fatalf("got %q", got)
	}
}

func TestFormatGutterNilSideIsEmpty(t *testing.T) {
	np := 7
	got := FormatGutter("{nm:>3}|{np:>3}", nil, &np)
	if got != "   |  7" {
		t.Fatalf("got %q", got)
	}
}

func TestCountersAdvanceIndependently(t *testing.T) {
	var c Counters
	if n := c.AdvanceMinus(); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
	if n := c.AdvanceMinus(); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	if n := c.AdvancePlus(); n != 1 {
		t.Fatalf("expected plus counter to start independently at 1, got %d", n)
	}
}

func TestComposeRowPadsBothPanelsToWidth(t *testing.T) {
	row := ComposeRow("L:", "short", "R:", "longer text", 11, false, termenv.Ascii, style.Color{})
	if row[len(row)-1] != '\n' {
		t.Fatal("expected row to end with newline")
	}
	if w := ansiterm.MeasureWidth(strings.TrimSuffix(row, "\n")); w != 2+11+2+11 {
		t.Fatalf("expected both panels padded to 11 columns (row width 26), got %d in %q", w, row)
	}
}

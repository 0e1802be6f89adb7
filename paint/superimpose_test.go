package paint

import (
	"testing"

	"github.com/fwojciec/diffview/style"
)

func TestSuperimposeTakesSyntaxForegroundWhenFlagged(t *testing.T) {
	diff := []styledRun{{style.Style{IsSyntaxHighlighted: true, Background: mustColor(t, "#000000")}, "abc"}}
	syntax := []styledRun{{style.Style{Foreground: mustColor(t, "#ff0000")}, "abc"}}

	out := superimpose(diff, syntax)
	if len(out) != 1 {
		t.Fatalf("expected one run, got %+v", out)
	}
	if out[0].Style.Foreground != mustColor(t, "#ff0000") {
		t.Fatalf("expected syntax foreground, got %+v", out[0].Style)
	}
	if out[0].Style.Background != mustColor(t, "#000000") {
		t.Fatalf("expected diff background preserved, got %+v", out[0].Style)
	}
}

func TestSuperimposeSplitsAtBoundaries(t *testing.T) {
	diff := []styledRun{{style.Style{}, "ab"}, {style.Style{}, "cd"}}
	syntax := []styledRun{{style.Style{}, "a"}, {style.Style{}, "bcd"}}

	out := superimpose(diff, syntax)
	var text string
	for _, r := range out {
		text += r.Text
	}
	if text != "abcd" {
		t.Fatalf("expected reconstructed text abcd, got %q", text)
	}
}

func mustColor(t *testing.T, hex string) style.Color {
	t.Helper()
	c, ok := style.ParseColor(hex)
	if !ok {
		t.Fatalf("failed to parse %q", hex)
	}
	return c
}

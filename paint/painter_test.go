package paint

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fwojciec/diffview/ansiterm"
	"github.com/fwojciec/diffview/classify"
)

func TestFlushSingleLineSubstitutionEmphasizesChangedToken(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Config{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.BufferMinus("a = 1", classify.State{Kind: classify.HunkMinus})
	p.BufferPlus("a = 2", classify.State{Kind: classify.HunkPlus})
	p.Flush()

	out := buf.String()
	if !strings.Contains(ansiterm.Strip(out), "a = 1") || !strings.Contains(ansiterm.Strip(out), "a = 2") {
		t.Fatalf("expected both lines in output, got %q", out)
	}
}

func TestFlushIsNoopWhenEmpty(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Config{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.Flush()
	if buf.Len() != 0 {
		t.Fatalf("expected no output from an empty flush, got %q", buf.String())
	}
}

func TestFlushOnlyMinusLinesNoAlignment(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Config{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.BufferMinus("one", classify.State{Kind: classify.HunkMinus})
	p.BufferMinus("two", classify.State{Kind: classify.HunkMinus})
	p.Flush()

	stripped := ansiterm.Strip(buf.String())
	if !strings.Contains(stripped, "one") || !strings.Contains(stripped, "two") {
		t.Fatalf("expected both minus-only lines painted, got %q", stripped)
	}
}

func TestPaintZeroLineWritesImmediately(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Config{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.PaintZeroLine("context line", classify.State{Kind: classify.HunkZero})
	if !strings.Contains(ansiterm.Strip(buf.String()), "context line") {
		t.Fatalf("expected context line written immediately, got %q", buf.String())
	}
}

func TestEmitMergeConflictLine(t *testing.T) {
	var buf bytes.Buffer
	p, err := New(&buf, Config{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	p.EmitMergeConflictLine("<<<<<<< HEAD", classify.Ours)
	if !strings.Contains(ansiterm.Strip(buf.String()), "<<<<<<< HEAD") {
		t.Fatalf("expected marker line written, got %q", buf.String())
	}
}

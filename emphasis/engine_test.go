package emphasis

import "testing"

func render(sections []Section) string {
	s := ""
	for _, sec := range sections {
		s += sec.Text
	}
	return s
}

func TestInferSingleLineSubstitution(t *testing.T) {
	e, err := NewEngine("", 0)
	if err != nil {
		t.Fatal(err)
	}
	minusSecs, plusSecs := e.Infer("a = 1", "a = 2")

	if got := render(minusSecs); got != "a = 1" {
		t.Fatalf("minus sections do not reconstruct line: %q", got)
	}
	if got := render(plusSecs); got != "a = 2" {
		t.Fatalf("plus sections do not reconstruct line: %q", got)
	}

	lastMinus := minusSecs[len(minusSecs)-1]
	lastPlus := plusSecs[len(plusSecs)-1]
	if lastMinus.Kind != Changed || lastMinus.Text != "1" {
		t.Fatalf("expected trailing changed '1', got %+v", lastMinus)
	}
	if lastPlus.Kind != Changed || lastPlus.Text != "2" {
		t.Fatalf("expected trailing changed '2', got %+v", lastPlus)
	}
	if minusSecs[0].Kind != Unchanged || minusSecs[0].Text != "a = " {
		t.Fatalf("expected leading unchanged 'a = ', got %+v", minusSecs[0])
	}
}

func TestInferRejectsUnrelatedLines(t *testing.T) {
	e, err := NewEngine("", 0.1)
	if err != nil {
		t.Fatal(err)
	}
	minusSecs, plusSecs := e.Infer("func foo() error {", "type Bar struct{}")
	if len(minusSecs) != 1 || minusSecs[0].Kind != Changed {
		t.Fatalf("expected whole-line fallback, got %+v", minusSecs)
	}
	if len(plusSecs) != 1 || plusSecs[0].Kind != Changed {
		t.Fatalf("expected whole-line fallback, got %+v", plusSecs)
	}
}

func TestNormalizedDistanceWhitespaceOnlyIsSmall(t *testing.T) {
	e, err := NewEngine("", 0)
	if err != nil {
		t.Fatal(err)
	}
	d := e.NormalizedDistance("foo(a, b)", "foo(a,  b)")
	if d > 0.1 {
		t.Fatalf("expected near-zero distance for whitespace-only diff, got %v", d)
	}
}

func TestEmptyLines(t *testing.T) {
	e, _ := NewEngine("", 0)
	minusSecs, plusSecs := e.Infer("", "")
	if minusSecs != nil || plusSecs != nil {
		t.Fatalf("expected nil sections for empty/empty, got %+v %+v", minusSecs, plusSecs)
	}
}

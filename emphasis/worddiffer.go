package emphasis

import "github.com/fwojciec/diffview"

// WordDiffer adapts an Engine to the diffview.WordDiffer interface consumed
// by the bubbletea viewer, so the interactive TUI's inline word-highlighting
// runs the same token-level edit-inference algorithm as the streaming core
// (spec §4.3) instead of a character-level diff.
type WordDiffer struct {
	engine *Engine
}

// Compile-time interface verification.
var _ diffview.WordDiffer = (*WordDiffer)(nil)

// NewWordDiffer wraps engine as a diffview.WordDiffer. A nil engine falls
// back to DefaultTokenizePattern and DefaultMaxLineDistance.
func NewWordDiffer(engine *Engine) *WordDiffer {
	if engine == nil {
		engine, _ = NewEngine("", 0)
	}
	return &WordDiffer{engine: engine}
}

// Diff implements diffview.WordDiffer in terms of Engine.Infer, translating
// Section lists into diffview.Segment lists.
func (d *WordDiffer) Diff(old, new string) (oldSegs, newSegs []diffview.Segment) {
	minusSecs, plusSecs := d.engine.Infer(old, new)
	return toSegments(minusSecs), toSegments(plusSecs)
}

func toSegments(secs []Section) []diffview.Segment {
	if secs == nil {
		return nil
	}
	out := make([]diffview.Segment, len(secs))
	for i, s := range secs {
		out[i] = diffview.Segment{Text: s.Text, Changed: s.Kind == Changed}
	}
	return out
}

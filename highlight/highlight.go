// Package highlight adapts a syntax-highlighting library to the trait-level
// service the core consumes: a source line plus a language tag in, a
// sequence of (style, substring) runs out (spec §1 "Out of scope... Syntax
// highlighting").
package highlight

import "github.com/fwojciec/diffview/style"

// Section is one syntax-highlighted run of a line.
type Section struct {
	Style style.Style
	Text  string
}

// Highlighter is the core's syntax-highlighting collaborator.
type Highlighter interface {
	// Highlight tokenizes line as source code in language, returning
	// sections that concatenate back to line exactly. An unknown language
	// or internal failure must fall back to a single default-styled
	// section covering the whole line (spec §4.10), never an error.
	Highlight(language, line string) []Section
}

// Plain is a Highlighter that never highlights; every line comes back as a
// single unstyled section. It is the zero-configuration fallback and the
// collaborator used by tests that don't care about syntax color.
type Plain struct{}

// Highlight implements Highlighter.
func (Plain) Highlight(_, line string) []Section {
	if line == "" {
		return nil
	}
	return []Section{{Style: style.Style{IsSyntaxHighlighted: true}, Text: line}}
}

package highlight

import (
	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/fwojciec/diffview/style"
)

// StyleFunc maps a chroma token type to a display style. It is how a theme
// (package theme) plugs its palette into the tokenizer without the
// tokenizer needing to know about theme's types.
type StyleFunc func(chromalib.TokenType) style.Style

// Chroma tokenizes source lines with the chroma library (spec §1: "the core
// consumes a trait-level service that maps a source line plus a language
// tag to a sequence of (style, substring) runs").
//
// Chroma lexers are designed to run over a whole file for full context
// (multi-line comments, here-docs); the painter only ever has one buffered
// line at flush time, so each call re-lexes that single line in isolation.
// This is a known, accepted degradation versus whole-file highlighting.
type Chroma struct {
	styleFunc StyleFunc
}

// NewChroma constructs a Chroma highlighter. styleFunc must not be nil.
func NewChroma(styleFunc StyleFunc) *Chroma {
	return &Chroma{styleFunc: styleFunc}
}

// Highlight implements Highlighter.
func (c *Chroma) Highlight(language, line string) []Section {
	if line == "" {
		return nil
	}
	if language == "" {
		return Plain{}.Highlight(language, line)
	}

	lexer := lexers.Get(language)
	if lexer == nil {
		return Plain{}.Highlight(language, line)
	}
	lexer = chromalib.Coalesce(lexer)

	iter, err := lexer.Tokenise(nil, line)
	if err != nil {
		return Plain{}.Highlight(language, line)
	}

	var sections []Section
	for tok := iter(); tok != chromalib.EOF; tok = iter() {
		if tok.Value == "" {
			continue
		}
		sections = append(sections, Section{Style: c.styleFunc(tok.Type), Text: tok.Value})
	}
	if sections == nil {
		return Plain{}.Highlight(language, line)
	}
	return sections
}

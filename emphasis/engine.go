package emphasis

import (
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// SectionKind discriminates a run of a line as unchanged or changed
// relative to its paired counterpart.
type SectionKind int

// Section kinds.
const (
	Unchanged SectionKind = iota
	Changed
)

// Section is one contiguous run of a line, classified relative to its pair.
type Section struct {
	Kind SectionKind
	Text string
}

// DefaultMaxLineDistance is delta's default rejection threshold (spec §4.3).
const DefaultMaxLineDistance = 0.3

// Engine computes paired-line emphasis sections.
type Engine struct {
	tokenize        *regexp.Regexp
	maxLineDistance float64
	dmp             *diffmatchpatch.DiffMatchPatch
}

// NewEngine compiles pattern as the tokenization regex. An empty pattern
// uses DefaultTokenizePattern. maxLineDistance <= 0 uses DefaultMaxLineDistance.
func NewEngine(pattern string, maxLineDistance float64) (*Engine, error) {
	if pattern == "" {
		pattern = DefaultTokenizePattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	if maxLineDistance <= 0 {
		maxLineDistance = DefaultMaxLineDistance
	}
	return &Engine{tokenize: re, maxLineDistance: maxLineDistance, dmp: diffmatchpatch.New()}, nil
}

// Infer returns parallel section sequences for minus and plus covering the
// full text of each, marking the inferred changed ranges (spec §4.3).
// If the normalized edit distance exceeds the engine's threshold, each side
// collapses to a single Changed section (whole-line emphasis fallback).
func (e *Engine) Infer(minus, plus string) (minusSections, plusSections []Section) {
	minusTokens := Tokenize(e.tokenize, minus)
	plusTokens := Tokenize(e.tokenize, plus)

	ops := e.diffTokens(minusTokens, plusTokens)
	dist := normalizedDistance(ops, minus, plus)

	if dist > e.maxLineDistance {
		return wholeLine(minus), wholeLine(plus)
	}

	return sectionsFor(ops, sideMinus), sectionsFor(ops, sidePlus)
}

// NormalizedDistance exposes the same cost function used internally by
// Infer's rejection test, for reuse as the pairing cost function (spec
// §4.3 pairing heuristics: "The normalized Levenshtein-like distance on
// tokens... Lines differing by only whitespace tokens collapse to near-zero
// cost").
func (e *Engine) NormalizedDistance(minus, plus string) float64 {
	minusTokens := Tokenize(e.tokenize, minus)
	plusTokens := Tokenize(e.tokenize, plus)
	ops := e.diffTokens(minusTokens, plusTokens)
	return normalizedDistance(ops, minus, plus)
}

func wholeLine(s string) []Section {
	if s == "" {
		return nil
	}
	return []Section{{Kind: Changed, Text: s}}
}

type opKind int

const (
	opEqual opKind = iota
	opDelete
	opInsert
)

type tokenOp struct {
	kind opKind
	text string
}

// diffTokens computes a token-level diff between a and b, returning an
// ordered list of Equal/Delete/Insert operations whose Delete+Equal tokens
// reconstruct a and whose Insert+Equal tokens reconstruct b.
//
// It reuses diffmatchpatch's line-mode trick at token granularity: each
// distinct token is assigned a private-use rune via DiffLinesToChars (the
// library's API treats "\n"-joined entries as opaque lines regardless of
// their content), the resulting rune strings are diffed with the ordinary
// Myers algorithm, and the runes are expanded back to tokens with
// DiffCharsToLines. This gets token-granularity equality for free from a
// character-level LCS implementation instead of hand-rolling one.
func (e *Engine) diffTokens(a, b []string) []tokenOp {
	joinedA := strings.Join(a, "\n")
	joinedB := strings.Join(b, "\n")
	runesA, runesB, tokenArray := e.dmp.DiffLinesToChars(joinedA, joinedB)

	diffs := e.dmp.DiffMain(runesA, runesB, false)
	diffs = e.dmp.DiffCharsToLines(diffs, tokenArray)

	var ops []tokenOp
	for _, d := range diffs {
		text := strings.TrimSuffix(d.Text, "\n")
		for _, tok := range strings.Split(text, "\n") {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				ops = append(ops, tokenOp{opEqual, tok})
			case diffmatchpatch.DiffDelete:
				ops = append(ops, tokenOp{opDelete, tok})
			case diffmatchpatch.DiffInsert:
				ops = append(ops, tokenOp{opInsert, tok})
			}
		}
	}
	return ops
}

type side int

const (
	sideMinus side = iota
	sidePlus
)

// sectionsFor projects the op list onto one side, coalescing adjacent
// sections of the same kind, dropping the opposite side's exclusive ops.
func sectionsFor(ops []tokenOp, s side) []Section {
	var out []Section
	flush := func(kind SectionKind, text string) {
		if text == "" {
			return
		}
		if n := len(out); n > 0 && out[n-1].Kind == kind {
			out[n-1].Text += text
			return
		}
		out = append(out, Section{Kind: kind, Text: text})
	}
	for _, op := range ops {
		switch {
		case op.kind == opEqual:
			flush(Unchanged, op.text)
		case s == sideMinus && op.kind == opDelete:
			flush(Changed, op.text)
		case s == sidePlus && op.kind == opInsert:
			flush(Changed, op.text)
		default:
			// The other side's exclusive token: absent from this side's text.
		}
	}
	return out
}

// normalizedDistance takes the larger of the deleted and inserted character
// counts (a substitution counts once, as in a Levenshtein distance) and
// divides it by the character length of the longer original line, giving a
// value in [0, 1].
func normalizedDistance(ops []tokenOp, minus, plus string) float64 {
	deleted, inserted := 0, 0
	for _, op := range ops {
		switch op.kind {
		case opDelete:
			deleted += len(op.text)
		case opInsert:
			inserted += len(op.text)
		}
	}
	changed := deleted
	if inserted > changed {
		changed = inserted
	}
	longer := len(minus)
	if len(plus) > longer {
		longer = len(plus)
	}
	if longer == 0 {
		return 0
	}
	return float64(changed) / float64(longer)
}

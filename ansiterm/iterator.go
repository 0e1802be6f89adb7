package ansiterm

import (
	"github.com/fwojciec/diffview/style"
)

// Kind discriminates the elements produced by Elements.
type Kind int

// Element kinds (spec §4.1).
const (
	TextKind Kind = iota
	CSIKind
	ESCKind
	OSCKind
)

// Element is one span of a string as classified by the VT parser: either a
// run of printable/text bytes, or a single escape/control-sequence element.
// Start/End are byte offsets into the original string (End exclusive).
type Element struct {
	Kind       Kind
	Start, End int
	Style      style.Style // decoded only for CSIKind with final 'm' and no intermediates
}

// collector implements Handler, accumulating a text run and flushing it
// whenever a non-text element is encountered.
type collector struct {
	src       string
	pos       int // byte offset of the byte currently being processed
	elemStart int // byte offset where the in-progress escape/control element began
	runeStart int // byte offset where the rune currently being decoded began
	textStart int
	inText    bool
	elements  []Element
}

func (c *collector) flushText(end int) {
	if c.inText && end > c.textStart {
		c.elements = append(c.elements, Element{Kind: TextKind, Start: c.textStart, End: end})
	}
	c.inText = false
}

func (c *collector) Print(r rune) {
	if !c.inText {
		c.inText = true
		c.textStart = c.runeStart
	}
}

func (c *collector) Execute(b byte) {
	if !c.inText {
		c.inText = true
		c.textStart = c.pos
	}
	// Simple control bytes (e.g. \n, \t, \r) are treated as text content;
	// width/measurement primitives account for them individually.
}

func (c *collector) CSIDispatch(params []uint16, intermediates []byte, ignore bool, final byte) {
	c.flushText(c.elemStart)
	st := style.Style{}
	if final == 'm' && len(intermediates) == 0 && !ignore {
		st = DecodeSGR(params)
	}
	c.elements = append(c.elements, Element{Kind: CSIKind, Start: c.elemStart, End: c.pos + 1, Style: st})
}

func (c *collector) OSCDispatch(data []byte, bellTerminated bool) {
	c.flushText(c.elemStart)
	c.elements = append(c.elements, Element{Kind: OSCKind, Start: c.elemStart, End: c.pos + 1})
}

func (c *collector) ESCDispatch(intermediates []byte, ignore bool, final byte) {
	c.flushText(c.elemStart)
	c.elements = append(c.elements, Element{Kind: ESCKind, Start: c.elemStart, End: c.pos + 1})
}

// Elements parses s into a sequence of Text/Csi/Esc/Osc spans with byte
// offsets, per spec §4.1. The parser is total: malformed escape sequences
// degrade to being reported as their raw bytes within a Text span.
func Elements(s string) []Element {
	c := &collector{src: s}
	p := NewParser()

	for i := 0; i < len(s); i++ {
		b := s[i]
		if p.state == stateGround {
			if b == 0x1b {
				// About to start a new escape/control element at byte i.
				c.elemStart = i
			} else if p.pendingWant == 0 {
				c.runeStart = i
			}
		}
		c.pos = i
		prev, n := p.state, len(c.elements)
		p.Advance(c, b)
		if prev != stateGround && p.state == stateGround && len(c.elements) == n && !c.inText {
			// An abandoned sequence dispatches nothing; its bytes start a text run.
			c.inText, c.textStart = true, c.elemStart
		}
	}
	p.Flush(c)
	if p.state != stateGround && !c.inText {
		// An unterminated sequence at end of input is likewise text.
		c.inText, c.textStart = true, c.elemStart
	}
	c.flushText(len(s))
	return c.elements
}

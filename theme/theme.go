// Package theme supplies the default color configuration for the painter
// and a chroma token-type palette, adapted from the teacher's lipgloss
// Catppuccin theme but re-expressed as style.Style values rather than
// Lipgloss's own color model.
package theme

import (
	chromalib "github.com/alecthomas/chroma/v2"

	"github.com/fwojciec/diffview/style"
)

// Config is the set of default styles a theme supplies for the painter's
// Config (spec §6 "Color/attribute defaults").
type Config struct {
	MinusStyle        style.Style
	MinusEmphStyle    style.Style
	MinusNonEmphStyle style.Style

	PlusStyle        style.Style
	PlusEmphStyle    style.Style
	PlusNonEmphStyle style.Style

	ZeroStyle            style.Style
	WhitespaceErrorStyle style.Style
	HunkHeaderStyle      style.Style
	FileStyle            style.Style
	CommitStyle          style.Style
	InlineHintStyle      style.Style
	LineNumberStyle      style.Style
}

func fg(hex string) style.Style {
	c, _ := style.ParseColor(hex)
	return style.Style{Foreground: c}
}

func fgBg(fgHex, bgHex string) style.Style {
	f, _ := style.ParseColor(fgHex)
	b, _ := style.ParseColor(bgHex)
	return style.Style{Foreground: f, Background: b}
}

// syntaxOver marks a style as taking its foreground from the syntax
// highlighter at paint time, keeping its own background/attributes (spec
// §4.6 step 4, "Superimpose").
func syntaxOver(s style.Style) style.Style {
	s.IsSyntaxHighlighted = true
	return s
}

// DarkTheme is the default dark-background theme, a direct color carry-over
// of the Catppuccin Mocha palette: very dark minus/plus backgrounds so that
// syntax-highlighted foregrounds remain legible against them.
func DarkTheme() Config {
	return Config{
		MinusStyle:           syntaxOver(fgBg("#f38ba8", "#3f0001")),
		MinusEmphStyle:       fgBg("#1e1e2e", "#f38ba8"),
		MinusNonEmphStyle:    syntaxOver(fgBg("#f38ba8", "#3f0001")),
		PlusStyle:            syntaxOver(fgBg("#a6e3a1", "#004000")),
		PlusEmphStyle:        fgBg("#1e1e2e", "#a6e3a1"),
		PlusNonEmphStyle:     syntaxOver(fgBg("#a6e3a1", "#004000")),
		ZeroStyle:            syntaxOver(fg("#cdd6f4")),
		WhitespaceErrorStyle: fgBg("#1e1e2e", "#f9e2af"),
		HunkHeaderStyle:      fg("#89b4fa"),
		FileStyle:            fgBg("#f9e2af", "#313244"),
		CommitStyle:          fg("#fab387"),
		InlineHintStyle:      fg("#6c7086"),
		LineNumberStyle:      fg("#6c7086"),
	}
}

// LightTheme is the Catppuccin Latte counterpart of DarkTheme.
func LightTheme() Config {
	return Config{
		MinusStyle:           syntaxOver(fgBg("#d20f39", "#f4d4d4")),
		MinusEmphStyle:       fgBg("#ffffff", "#d20f39"),
		MinusNonEmphStyle:    syntaxOver(fgBg("#d20f39", "#f4d4d4")),
		PlusStyle:            syntaxOver(fgBg("#40a02b", "#d4f4d4")),
		PlusEmphStyle:        fgBg("#ffffff", "#40a02b"),
		PlusNonEmphStyle:     syntaxOver(fgBg("#40a02b", "#d4f4d4")),
		ZeroStyle:            syntaxOver(fg("#4c4f69")),
		WhitespaceErrorStyle: fgBg("#4c4f69", "#df8e1d"),
		HunkHeaderStyle:      fg("#1e66f5"),
		FileStyle:            fgBg("#df8e1d", "#e6e9ef"),
		CommitStyle:          fg("#fe640b"),
		InlineHintStyle:      fg("#9ca0b0"),
		LineNumberStyle:      fg("#9ca0b0"),
	}
}

// ChromaPalette returns a highlight.StyleFunc-compatible mapping (spec §1
// syntax-highlighting collaborator) from chroma token categories onto this
// theme's syntax colors. Shares the Catppuccin Mocha/Latte hues the teacher
// used for its Palette.Keyword/.String/etc. fields.
func ChromaPalette(dark bool) func(chromalib.TokenType) style.Style {
	p := moccha
	if !dark {
		p = latte
	}
	return func(t chromalib.TokenType) style.Style {
		switch {
		case t.InCategory(chromalib.Keyword):
			return fg(p.keyword)
		case t.InCategory(chromalib.LiteralString):
			return fg(p.str)
		case t.InCategory(chromalib.LiteralNumber):
			return fg(p.number)
		case t.InCategory(chromalib.Comment):
			return fg(p.comment)
		case t.InCategory(chromalib.Operator):
			return fg(p.operator)
		case t.InCategory(chromalib.NameFunction):
			return fg(p.function)
		case t.InCategory(chromalib.KeywordType), t.InCategory(chromalib.NameClass):
			return fg(p.typ)
		case t.InCategory(chromalib.Punctuation):
			return fg(p.punctuation)
		default:
			return style.Style{IsSyntaxHighlighted: true}
		}
	}
}

type syntaxPalette struct {
	keyword, str, number, comment, operator, function, typ, punctuation string
}

var moccha = syntaxPalette{
	keyword:     "#cba6f7",
	str:         "#a6e3a1",
	number:      "#fab387",
	comment:     "#6c7086",
	operator:    "#89dceb",
	function:    "#89b4fa",
	typ:         "#f9e2af",
	punctuation: "#9399b2",
}

var latte = syntaxPalette{
	keyword:     "#8839ef",
	str:         "#40a02b",
	number:      "#fe640b",
	comment:     "#9ca0b0",
	operator:    "#04a5e5",
	function:    "#1e66f5",
	typ:         "#df8e1d",
	punctuation: "#6c6f85",
}

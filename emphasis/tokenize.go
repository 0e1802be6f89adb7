// Package emphasis implements the edit-inference engine of spec §4.3: given
// a paired minus/plus line, it tokenizes both, computes a token-level LCS
// diff, coalesces runs of the same kind, and rejects the result (falling
// back to whole-line emphasis) when the normalized edit distance is too
// large to be a useful hint.
package emphasis

import "regexp"

// DefaultTokenizePattern is delta's default tokenization regex: maximal
// runs of word characters, or single non-word characters.
const DefaultTokenizePattern = `\w+|[^\w]`

var defaultTokenizeRegexp = regexp.MustCompile(DefaultTokenizePattern)

// Tokenize splits s into tokens using re. Concatenating the returned tokens
// reproduces s exactly, which is what lets coalesced sections be rejoined
// without loss.
func Tokenize(re *regexp.Regexp, s string) []string {
	if s == "" {
		return nil
	}
	return re.FindAllString(s, -1)
}

// DefaultTokenize tokenizes s with DefaultTokenizePattern.
func DefaultTokenize(s string) []string {
	return Tokenize(defaultTokenizeRegexp, s)
}

package classify

import "strings"

// DetectSource inspects the first non-blank line of a stream and classifies
// its diff dialect (spec §3 "Diff source"). It is meant to be called once,
// at stream start, with each candidate line until it returns a definitive
// source or the stream is exhausted.
func DetectSource(line string) Source {
	switch {
	case strings.HasPrefix(line, "commit "), strings.HasPrefix(line, "diff --git "):
		return SourceGitDiff
	case strings.HasPrefix(line, "diff -u "), strings.HasPrefix(line, "diff -U "), strings.HasPrefix(line, "--- "):
		return SourceDiffUnified
	default:
		return SourceUnknown
	}
}

package classify

import "regexp"

// hunkHeaderRegexp matches an "@@ ... @@" (or "@@@ ... @@@" for combined
// diffs) line, capturing the coordinate fragment and the trailing section
// heading (spec §6 "Hunk header regex").
var hunkHeaderRegexp = regexp.MustCompile(`@+ ([^@]+)@+(.*\s?)`)

// coordinateRegexp extracts one [-+]start(,length)? coordinate pair.
var coordinateRegexp = regexp.MustCompile(`[-+](\d+)(,(\d+))?`)

// ParseHunkHeader parses raw as an "@@ ... @@" line. ok is false if raw does
// not match the hunk-header grammar at all; a malformed coordinate list
// still returns ok=true with whatever coordinates could be extracted (spec
// §4.10: malformed hunk headers fall through to emit-unchanged, which is
// the caller's responsibility based on len(Coordinates)).
func ParseHunkHeader(raw string) (HunkHeaderInfo, bool) {
	m := hunkHeaderRegexp.FindStringSubmatch(raw)
	if m == nil {
		return HunkHeaderInfo{}, false
	}
	coordField, fragment := m[1], m[2]

	var coords []Coordinate
	for _, cm := range coordinateRegexp.FindAllStringSubmatch(coordField, -1) {
		start := atoi(cm[1])
		length := 1
		if cm[3] != "" {
			length = atoi(cm[3])
		}
		coords = append(coords, Coordinate{Start: start, Length: length})
	}

	return HunkHeaderInfo{CodeFragment: fragment, Coordinates: coords}, true
}

// DetectDiffType classifies a parsed hunk header as Unified (2 coordinate
// pairs) or Combined (3+, one per merge parent plus the result).
func DetectDiffType(h HunkHeaderInfo) DiffType {
	switch {
	case len(h.Coordinates) >= 3:
		return DiffTypeCombined
	case len(h.Coordinates) == 2:
		return DiffTypeUnified
	default:
		return DiffTypeNone
	}
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return n
		}
		n = n*10 + int(r-'0')
	}
	return n
}

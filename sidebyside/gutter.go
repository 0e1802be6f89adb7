package sidebyside

import (
	"strconv"
	"strings"
)

// FormatGutter renders a line-number field template containing the
// placeholders {nm} and {np}, with optional alignment/width specifiers
// ":<N", ":^N", ":>N" (spec §4.9). A nil pointer renders as an empty field
// (the line has no number on that side).
func FormatGutter(tmpl string, nm, np *int) string {
	var out strings.Builder
	i := 0
	for i < len(tmpl) {
		if tmpl[i] == '{' {
			if end := strings.IndexByte(tmpl[i:], '}'); end >= 0 {
				spec := tmpl[i+1 : i+end]
				out.WriteString(renderPlaceholder(spec, nm, np))
				i += end + 1
				continue
			}
		}
		out.WriteByte(tmpl[i])
		i++
	}
	return out.String()
}

func renderPlaceholder(spec string, nm, np *int) string {
	name, align, width := parseSpec(spec)
	var val string
	switch name {
	case "nm":
		if nm != nil {
			val = strconv.Itoa(*nm)
		}
	case "np":
		if np != nil {
			val = strconv.Itoa(*np)
		}
	}
	return padAlign(val, align, width)
}

func parseSpec(spec string) (name string, align byte, width int) {
	parts := strings.SplitN(spec, ":", 2)
	name = parts[0]
	align = '<'
	if len(parts) != 2 || parts[1] == "" {
		return name, align, 0
	}
	rest := parts[1]
	switch rest[0] {
	case '<', '^', '>':
		align = rest[0]
		rest = rest[1:]
	}
	width, _ = strconv.Atoi(rest)
	return name, align, width
}

func padAlign(s string, align byte, width int) string {
	if len(s) >= width {
		return s
	}
	pad := width - len(s)
	switch align {
	case '>':
		return strings.Repeat(" ", pad) + s
	case '^':
		left := pad / 2
		right := pad - left
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", right)
	default:
		return s + strings.Repeat(" ", pad)
	}
}

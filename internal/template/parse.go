// internal/template/parse.go
// Package template parses snippet replacement strings: tabstop markers,
// default text and escapes, plus the trigger registry that matches typed
// text against snippet definitions.
package template

import (
	"strconv"
	"strings"
)

// Marker is one tabstop marker located in Parsed.Text. The marker text
// itself ("$1", "${2:n}") occupies [Offset, Offset+Length) and is later
// replaced by Default.
type Marker struct {
	Offset  int    // byte offset in Parsed.Text
	Length  int    // byte length of the marker text
	Group   int    // tabstop number; 0 is the final stop
	Default string // default text, empty for bare markers
}

// Parsed is a replacement string prepared for insertion: escapes are
// resolved, markers are kept verbatim and indexed. Supported marker forms:
//
//	$1          bare tabstop
//	${1:text}   tabstop with default text
//	$0          final tabstop
//
// "\$" produces a literal dollar sign and "\\" a literal backslash.
type Parsed struct {
	Text    string
	Markers []Marker
}

// HasMarkers reports whether the replacement contained any tabstops.
func (p Parsed) HasMarkers() bool {
	return len(p.Markers) > 0
}

// Final returns the text after every marker is replaced by its default,
// i.e. the document content once a snippet session finishes untouched.
func (p Parsed) Final() string {
	var out strings.Builder
	pos := 0
	for _, m := range p.Markers {
		out.WriteString(p.Text[pos:m.Offset])
		out.WriteString(m.Default)
		pos = m.Offset + m.Length
	}
	out.WriteString(p.Text[pos:])
	return out.String()
}

// Parse prepares a replacement string for insertion.
func Parse(replacement string) Parsed {
	var text strings.Builder
	var markers []Marker

	i := 0
	for i < len(replacement) {
		c := replacement[i]

		if c == '\\' && i+1 < len(replacement) {
			next := replacement[i+1]
			if next == '$' || next == '\\' {
				text.WriteByte(next)
				i += 2
				continue
			}
			text.WriteByte(c)
			i++
			continue
		}

		if c != '$' {
			text.WriteByte(c)
			i++
			continue
		}

		// Bare form: $N
		if group, width, ok := scanDigits(replacement[i+1:]); ok {
			marker := replacement[i : i+1+width]
			markers = append(markers, Marker{
				Offset: text.Len(),
				Length: len(marker),
				Group:  group,
			})
			text.WriteString(marker)
			i += 1 + width
			continue
		}

		// Braced form: ${N:text} or ${N}
		if group, def, width, ok := scanBraced(replacement[i+1:]); ok {
			marker := replacement[i : i+1+width]
			markers = append(markers, Marker{
				Offset:  text.Len(),
				Length:  len(marker),
				Group:   group,
				Default: def,
			})
			text.WriteString(marker)
			i += 1 + width
			continue
		}

		// A dollar sign that starts no marker is literal.
		text.WriteByte(c)
		i++
	}

	return Parsed{Text: text.String(), Markers: markers}
}

// scanDigits reads a leading run of digits. ok is false when there are none.
func scanDigits(s string) (value, width int, ok bool) {
	for width < len(s) && s[width] >= '0' && s[width] <= '9' {
		width++
	}
	if width == 0 {
		return 0, 0, false
	}
	value, _ = strconv.Atoi(s[:width])
	return value, width, true
}

// scanBraced reads a "{N:text}" or "{N}" form; text may contain anything but
// a closing brace.
func scanBraced(s string) (group int, text string, width int, ok bool) {
	if len(s) == 0 || s[0] != '{' {
		return 0, "", 0, false
	}
	digits, dwidth, dok := scanDigits(s[1:])
	if !dok {
		return 0, "", 0, false
	}
	rest := s[1+dwidth:]
	if len(rest) == 0 {
		return 0, "", 0, false
	}
	switch rest[0] {
	case '}':
		return digits, "", 1 + dwidth + 1, true
	case ':':
		end := strings.IndexByte(rest[1:], '}')
		if end < 0 {
			return 0, "", 0, false
		}
		return digits, rest[1 : 1+end], 1 + dwidth + 1 + end + 1, true
	default:
		return 0, "", 0, false
	}
}

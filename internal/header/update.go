package header

import "strings"

// FieldLine is a "<prefix> @Key<sep> value" line found in a header.
type FieldLine struct {
	Line  int // zero-based line number
	Key   string
	Value string

	lead       string // leading whitespace, comment marker and the gap before '@'
	rest       string // everything after the key
	start, end int    // byte range of the line content, excluding "\r\n"
}

// ScanFields returns the field lines among the first maxLines lines of text.
func ScanFields(text string, maxLines int) []FieldLine {
	if maxLines <= 0 {
		maxLines = DefaultScanLines
	}

	var fields []FieldLine
	offset := 0
	for n := 0; n < maxLines && offset < len(text); n++ {
		end := strings.IndexByte(text[offset:], '\n')
		next := len(text)
		if end < 0 {
			end = len(text)
		} else {
			end += offset
			next = end + 1
		}
		contentEnd := end
		if contentEnd > offset && text[contentEnd-1] == '\r' {
			contentEnd--
		}

		if fl, ok := parseFieldLine(text[offset:contentEnd]); ok {
			fl.Line = n
			fl.start, fl.end = offset, contentEnd
			fields = append(fields, fl)
		}
		offset = next
	}
	return fields
}

// UpdateField replaces the value of the first "@<field>" line in the header prefix of text.
// The key is re-padded against the keys already present in the file, not the template's.
// Text without a matching line is returned unchanged.
func UpdateField(text, field, value string, opts Options) string {
	fields := ScanFields(text, DefaultScanLines)

	var target *FieldLine
	keys := make([]string, 0, len(fields))
	for i := range fields {
		keys = append(keys, "@"+fields[i].Key)
		if target == nil && fields[i].Key == field && fields[i].separated() {
			target = &fields[i]
		}
	}
	if target == nil {
		return text
	}

	line := target.lead + fieldContent("@"+field, value, keyWidth(keys), opts)
	return text[:target.start] + line + text[target.end:]
}

// parseFieldLine classifies a line as a field line: optional whitespace, '*' or '#',
// optional whitespace, '@' and a word key, then whatever follows.
func parseFieldLine(line string) (FieldLine, bool) {
	i := skipSpace(line, 0)
	if i >= len(line) || (line[i] != '*' && line[i] != '#') {
		return FieldLine{}, false
	}
	i = skipSpace(line, i+1)
	if i >= len(line) || line[i] != '@' {
		return FieldLine{}, false
	}
	lead := line[:i]

	j := i + 1
	for j < len(line) && isWordByte(line[j]) {
		j++
	}
	if j == i+1 {
		return FieldLine{}, false
	}

	rest := line[j:]
	value := strings.TrimSpace(strings.TrimPrefix(rest, ":"))
	return FieldLine{
		Key:   line[i+1 : j],
		Value: value,
		lead:  lead,
		rest:  rest,
	}, true
}

// separated reports whether the key is followed by ':', whitespace or the end of line,
// so "@LastEditTime" never matches "@LastEditTimeZone".
func (f FieldLine) separated() bool {
	if f.rest == "" {
		return true
	}
	c := f.rest[0]
	return c == ':' || c == ' ' || c == '\t'
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isWordByte(c byte) bool {
	return c == '_' || ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

package header

import (
	"strconv"
	"strings"
	"time"
)

// DefaultDateFormat is the pattern used when none is configured.
const DefaultDateFormat = "YYYY-MM-DD HH:mm:ss"

var timeTokens = []string{"YYYY", "MM", "DD", "HH", "mm", "ss"}

// FormatTime renders t using a pattern made of YYYY, MM, DD, HH, mm and ss.
// Tokens are matched case-sensitively, leftmost first; any other text is copied as is.
func FormatTime(t time.Time, pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 4)

	for i := 0; i < len(pattern); {
		tok := matchToken(pattern[i:])
		if tok == "" {
			b.WriteByte(pattern[i])
			i++
			continue
		}
		b.WriteString(tokenValue(t, tok))
		i += len(tok)
	}
	return b.String()
}

func matchToken(s string) string {
	for _, tok := range timeTokens {
		if strings.HasPrefix(s, tok) {
			return tok
		}
	}
	return ""
}

func tokenValue(t time.Time, tok string) string {
	switch tok {
	case "YYYY":
		return strconv.Itoa(t.Year())
	case "MM":
		return pad2(int(t.Month()))
	case "DD":
		return pad2(t.Day())
	case "HH":
		return pad2(t.Hour())
	case "mm":
		return pad2(t.Minute())
	case "ss":
		return pad2(t.Second())
	}
	return tok
}

func pad2(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}

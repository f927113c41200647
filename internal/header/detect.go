package header

import "strings"

// DefaultScanLines bounds how far into a document header detection and field updates look.
const DefaultScanLines = 20

var signatures = []string{
	blockOpen,
	"@Author",
	"@Date",
	"@" + KeyLastEditors,
	"@" + KeyLastEditTime,
}

// HasHeader reports whether any of the first maxLines lines carries a header signature.
// Only the inspected prefix is split, so large documents are not scanned in full.
func HasHeader(text string, maxLines int) bool {
	if maxLines <= 0 {
		maxLines = DefaultScanLines
	}
	for _, line := range headLines(text, maxLines) {
		for _, sig := range signatures {
			if strings.Contains(line, sig) {
				return true
			}
		}
	}
	return false
}

// headLines returns at most n leading lines of text, without their terminators.
func headLines(text string, n int) []string {
	lines := make([]string, 0, n)
	for len(lines) < n && text != "" {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			lines = append(lines, text)
			break
		}
		lines = append(lines, text[:i])
		text = text[i+1:]
	}
	return lines
}

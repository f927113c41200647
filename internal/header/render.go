package header

import (
	"strings"
)

// Values carries the runtime data substituted into field templates.
type Values struct {
	Author       string
	Email        string
	CreateTime   string
	LastEditTime string
	CurrentYear  string
}

const (
	blockOpen   = "/***"
	blockClose  = " */"
	blockPrefix = " * "
	hashPrefix  = "# "
)

func (v Values) replacer() *strings.Replacer {
	return strings.NewReplacer(
		"{{author}}", v.Author,
		"{{email}}", v.Email,
		"{{createTime}}", v.CreateTime,
		"{{lastEditTime}}", v.LastEditTime,
		"{{currentYear}}", v.CurrentYear,
	)
}

// Render builds the header text for tmpl. It returns false when no field is visible.
func Render(tmpl Template, values Values, opts Options) (string, bool) {
	visible := make([]Field, 0, len(tmpl.Fields))
	for _, f := range tmpl.Fields {
		if f.visible(opts) {
			visible = append(visible, f)
		}
	}
	if len(visible) == 0 {
		return "", false
	}

	keys := make([]string, len(visible))
	for i, f := range visible {
		keys[i] = "@" + f.Key
	}
	width := keyWidth(keys)

	prefix := blockPrefix
	if tmpl.Style == HashStyle {
		prefix = hashPrefix
	}

	r := values.replacer()
	lines := make([]string, 0, len(visible)+2)
	if tmpl.Style == BlockStyle {
		lines = append(lines, blockOpen)
	}
	for i, f := range visible {
		lines = append(lines, prefix+fieldContent(keys[i], r.Replace(f.Value), width, opts))
	}
	if tmpl.Style == BlockStyle {
		lines = append(lines, blockClose)
	}
	return strings.Join(lines, "\n"), true
}

// RenderFor looks up the template for languageID and renders it.
func RenderFor(languageID string, values Values, opts Options) (string, bool) {
	tmpl, ok := TemplateFor(languageID)
	if !ok {
		return "", false
	}
	return Render(tmpl, values, opts)
}

// keyWidth is one column past the longest display key.
func keyWidth(keys []string) int {
	longest := 0
	for _, k := range keys {
		if len(k) > longest {
			longest = len(k)
		}
	}
	return longest + 1
}

// fieldContent formats "<key><sep> <value>" without the comment prefix.
// The separator sits directly after the key and alignment pads the pair to width.
func fieldContent(displayKey, value string, width int, opts Options) string {
	key := displayKey
	if opts.UseColon {
		key += ":"
	}
	if opts.Align && len(key) < width {
		key += strings.Repeat(" ", width-len(key))
	}
	return strings.TrimRight(key+" "+value, " \t")
}

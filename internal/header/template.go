package header

import "sort"

// CommentStyle selects how header lines are decorated.
type CommentStyle int

const (
	// BlockStyle wraps the fields in "/***" ... " */" with a " * " prefix.
	BlockStyle CommentStyle = iota
	// HashStyle prefixes every field with "# " and has no delimiters.
	HashStyle
)

// Options is the configuration snapshot a render or update runs against.
type Options struct {
	Align        bool
	UseColon     bool
	LastEditors  bool
	LastEditTime bool
	Copyright    bool
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return Options{
		Align:        true,
		UseColon:     true,
		LastEditors:  true,
		LastEditTime: true,
		Copyright:    true,
	}
}

// Field is a single "@Key value" line of a header.
type Field struct {
	Key   string
	Value string
	// Visible reports whether the field is emitted; nil means always.
	Visible func(Options) bool
}

func (f Field) visible(opts Options) bool {
	if f.Visible == nil {
		return true
	}
	return f.Visible(opts)
}

// Template is the ordered field list for one language.
type Template struct {
	Language string
	Style    CommentStyle
	Fields   []Field
}

// Field keys the updater rewrites on save.
const (
	KeyLastEditors  = "LastEditors"
	KeyLastEditTime = "LastEditTime"
)

func showLastEditors(o Options) bool  { return o.LastEditors }
func showLastEditTime(o Options) bool { return o.LastEditTime }
func showCopyright(o Options) bool    { return o.Copyright }

func baseFields() []Field {
	return []Field{
		{Key: "Author", Value: "{{author}}"},
		{Key: "Email", Value: "{{email}}"},
		{Key: "Date", Value: "{{createTime}}"},
		{Key: KeyLastEditors, Value: "{{author}}", Visible: showLastEditors},
		{Key: KeyLastEditTime, Value: "{{lastEditTime}}", Visible: showLastEditTime},
	}
}

func withCopyright(copyright string) []Field {
	fields := baseFields()
	fields = append(fields, Field{Key: "Copyright", Value: copyright, Visible: showCopyright})
	return append(fields, Field{Key: "Description"})
}

func withDescription() []Field {
	return append(baseFields(), Field{Key: "Description"})
}

var registry = buildRegistry()

func buildRegistry() map[string]Template {
	const (
		plainCopyright  = "{{currentYear}} {{author}} All Rights Reserved"
		markedCopyright = "Copyright (c) {{currentYear}} {{author}} All Rights Reserved"
	)

	templates := []Template{
		{Language: "javascript", Style: BlockStyle, Fields: withCopyright(plainCopyright)},
		{Language: "typescript", Style: BlockStyle, Fields: withCopyright(markedCopyright)},
		{Language: "python", Style: HashStyle, Fields: withDescription()},
		{Language: "java", Style: BlockStyle, Fields: withDescription()},
		{Language: "go", Style: BlockStyle, Fields: withCopyright(markedCopyright)},
		{Language: "c", Style: BlockStyle, Fields: withCopyright(markedCopyright)},
		{Language: "cpp", Style: BlockStyle, Fields: withCopyright(markedCopyright)},
		{Language: "rust", Style: BlockStyle, Fields: withDescription()},
	}

	m := make(map[string]Template, len(templates))
	for _, t := range templates {
		m[t.Language] = t
	}
	return m
}

// TemplateFor returns the template registered for languageID.
// A missing template is a normal outcome for unsupported languages.
func TemplateFor(languageID string) (Template, bool) {
	t, ok := registry[languageID]
	return t, ok
}

// Languages lists the supported language ids in sorted order.
func Languages() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

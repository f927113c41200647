package header

import (
	"strings"
	"testing"
)

var testValues = Values{
	Author:       "Ada",
	Email:        "ada@x.io",
	CreateTime:   "2024-01-01 00:00:00",
	LastEditTime: "2024-06-01 12:00:00",
	CurrentYear:  "2024",
}

func TestRender_PythonAlignedWithColon(t *testing.T) {
	tmpl := Template{
		Language: "python",
		Style:    HashStyle,
		Fields: []Field{
			{Key: "Author", Value: "{{author}}"},
			{Key: "Email", Value: "{{email}}"},
			{Key: "Date", Value: "{{createTime}}"},
		},
	}

	got, ok := Render(tmpl, testValues, DefaultOptions())
	if !ok {
		t.Fatal("Render returned no header")
	}
	want := "# @Author: Ada\n" +
		"# @Email:  ada@x.io\n" +
		"# @Date:   2024-01-01 00:00:00"
	if got != want {
		t.Fatalf("Render mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_JavaScriptBlock(t *testing.T) {
	got, ok := RenderFor("javascript", testValues, DefaultOptions())
	if !ok {
		t.Fatal("RenderFor(javascript) returned no header")
	}
	want := strings.Join([]string{
		"/***",
		" * @Author:       Ada",
		" * @Email:        ada@x.io",
		" * @Date:         2024-01-01 00:00:00",
		" * @LastEditors:  Ada",
		" * @LastEditTime: 2024-06-01 12:00:00",
		" * @Copyright:    2024 Ada All Rights Reserved",
		" * @Description:",
		" */",
	}, "\n")
	if got != want {
		t.Fatalf("Render mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRender_NoAlignNoColon(t *testing.T) {
	opts := Options{}
	got, ok := RenderFor("python", testValues, opts)
	if !ok {
		t.Fatal("RenderFor(python) returned no header")
	}
	want := "# @Author Ada\n" +
		"# @Email ada@x.io\n" +
		"# @Date 2024-01-01 00:00:00\n" +
		"# @Description"
	if got != want {
		t.Fatalf("Render mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRender_VisibilityKeepsOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.LastEditors = false
	opts.Copyright = false

	got, ok := RenderFor("typescript", testValues, opts)
	if !ok {
		t.Fatal("RenderFor(typescript) returned no header")
	}
	var keys []string
	for _, f := range ScanFields(got, 0) {
		keys = append(keys, f.Key)
	}
	want := "Author,Email,Date,LastEditTime,Description"
	if strings.Join(keys, ",") != want {
		t.Fatalf("keys = %v, want %s", keys, want)
	}
}

func TestRender_AlignmentInvariant(t *testing.T) {
	for _, lang := range Languages() {
		t.Run(lang, func(t *testing.T) {
			got, ok := RenderFor(lang, testValues, DefaultOptions())
			if !ok {
				t.Fatalf("RenderFor(%s) returned no header", lang)
			}
			fields := ScanFields(got, 0)
			if len(fields) == 0 {
				t.Fatal("no field lines rendered")
			}

			longest := 0
			for _, f := range fields {
				if n := len(f.Key) + 1; n > longest {
					longest = n
				}
			}
			width := longest + 1

			for _, f := range fields {
				line := strings.Split(got, "\n")[f.Line]
				at := strings.Index(line, "@")
				padded := line[at:]
				if len(padded) > width {
					padded = padded[:width]
				}
				if len(padded) != width && f.Value != "" {
					t.Fatalf("line %q: padded key %q has length %d, want %d", line, padded, len(padded), width)
				}
				if f.Value != "" && line[at+width] != ' ' {
					t.Fatalf("line %q: value does not start after width %d", line, width)
				}
			}
		})
	}
}

func TestRender_UnsupportedLanguage(t *testing.T) {
	if _, ok := TemplateFor("brainfuck"); ok {
		t.Fatal("TemplateFor(brainfuck) should be absent")
	}
	for _, opts := range []Options{{}, DefaultOptions()} {
		if got, ok := RenderFor("brainfuck", testValues, opts); ok || got != "" {
			t.Fatalf("RenderFor(brainfuck) = %q, %v; want empty, false", got, ok)
		}
	}
}

func TestRender_NoVisibleFields(t *testing.T) {
	hidden := func(Options) bool { return false }
	tmpl := Template{Style: BlockStyle, Fields: []Field{{Key: "Author", Value: "{{author}}", Visible: hidden}}}
	if got, ok := Render(tmpl, testValues, DefaultOptions()); ok || got != "" {
		t.Fatalf("Render = %q, %v; want empty, false", got, ok)
	}
}

func TestRender_UnknownPlaceholderVerbatim(t *testing.T) {
	tmpl := Template{Style: HashStyle, Fields: []Field{{Key: "Note", Value: "{{author}} {{unknown}}"}}}
	got, _ := Render(tmpl, testValues, DefaultOptions())
	if got != "# @Note: Ada {{unknown}}" {
		t.Fatalf("Render = %q", got)
	}
}

func TestRender_ValuesAreNotReexpanded(t *testing.T) {
	v := testValues
	v.Author = "{{email}}"
	tmpl := Template{Style: HashStyle, Fields: []Field{{Key: "Author", Value: "{{author}}"}}}
	got, _ := Render(tmpl, v, DefaultOptions())
	if got != "# @Author: {{email}}" {
		t.Fatalf("Render = %q", got)
	}
}

func TestLanguages(t *testing.T) {
	langs := Languages()
	want := []string{"c", "cpp", "go", "java", "javascript", "python", "rust", "typescript"}
	if strings.Join(langs, ",") != strings.Join(want, ",") {
		t.Fatalf("Languages() = %v, want %v", langs, want)
	}
	py, _ := TemplateFor("python")
	if py.Style != HashStyle {
		t.Fatal("python should use the hash style")
	}
	js, _ := TemplateFor("javascript")
	if js.Style != BlockStyle {
		t.Fatal("javascript should use the block style")
	}
}

// Package filehost drives the engine against files on disk.
package filehost

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cexll/fileheader/internal/engine"
)

var extensions = map[string]string{
	".js":   "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".jsx":  "javascript",
	".ts":   "typescript",
	".tsx":  "typescript",
	".mts":  "typescript",
	".py":   "python",
	".pyw":  "python",
	".java": "java",
	".go":   "go",
	".c":    "c",
	".h":    "c",
	".cc":   "cpp",
	".cpp":  "cpp",
	".cxx":  "cpp",
	".hpp":  "cpp",
	".hh":   "cpp",
	".rs":   "rust",
}

// LanguageFor guesses the language id from a file name. Unknown extensions yield "".
func LanguageFor(path string) string {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Open reads path into a document. An empty language derives it from the extension.
func Open(path, language string) (engine.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return engine.Document{}, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return engine.Document{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if language == "" {
		language = LanguageFor(abs)
	}
	return engine.Document{
		URI:        abs,
		LanguageID: language,
		Text:       string(data),
	}, nil
}

// Apply writes the result back to the document's file. Results without an edit are ignored.
func Apply(doc engine.Document, res engine.Result) error {
	if !res.Changed() {
		return nil
	}
	return writeAtomic(doc.URI, []byte(res.Text))
}

// writeAtomic replaces dest through a temporary file in the same directory,
// so a failed write leaves the original untouched.
func writeAtomic(dest string, data []byte) error {
	info, err := os.Stat(dest)
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", dest, err)
	}

	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".fileheader-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	_ = os.Chmod(tmpPath, info.Mode().Perm())

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("failed to replace %s: %w", dest, err)
	}
	return nil
}

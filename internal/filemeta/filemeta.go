// Package filemeta answers filesystem questions about documents identified by URI.
package filemeta

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotLocal is returned for documents that do not live on the local filesystem.
var ErrNotLocal = errors.New("document is not a local file")

// LocalPath maps a document URI to a filesystem path.
// Plain paths are accepted as is; URIs must use the file scheme.
func LocalPath(uri string) (string, error) {
	if uri == "" {
		return "", ErrNotLocal
	}
	if !strings.Contains(uri, "://") && !strings.HasPrefix(uri, "untitled:") {
		return uri, nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid document uri %q: %w", uri, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: scheme %q", ErrNotLocal, u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

// Dir returns the directory containing a local document, or "" when there is none.
func Dir(uri string) string {
	path, err := LocalPath(uri)
	if err != nil {
		return ""
	}
	return filepath.Dir(path)
}

// BirthTime returns the creation time of the file behind uri.
// Filesystems that do not record creation time report the modification time instead.
func BirthTime(uri string) (time.Time, error) {
	path, err := LocalPath(uri)
	if err != nil {
		return time.Time{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return birthTime(path, info), nil
}

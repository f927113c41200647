package filemeta

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLocalPath(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		want    string
		wantErr error
	}{
		{"plain path", "/tmp/a.go", "/tmp/a.go", nil},
		{"file uri", "file:///tmp/a%20b.go", filepath.FromSlash("/tmp/a b.go"), nil},
		{"remote scheme", "vscode-remote://ssh/host/a.go", "", ErrNotLocal},
		{"untitled", "untitled:Untitled-1", "", ErrNotLocal},
		{"empty", "", "", ErrNotLocal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocalPath(tt.uri)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LocalPath(%q) error = %v, want %v", tt.uri, err, tt.wantErr)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Fatalf("LocalPath(%q) = %q, %v; want %q", tt.uri, got, err, tt.want)
			}
		})
	}
}

func TestDir(t *testing.T) {
	if got := Dir("file:///tmp/pkg/a.go"); got != filepath.FromSlash("/tmp/pkg") {
		t.Fatalf("Dir = %q", got)
	}
	if got := Dir("https://example.com/a.go"); got != "" {
		t.Fatalf("Dir for remote uri = %q, want empty", got)
	}
}

func TestBirthTime_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.py")
	if err := os.WriteFile(path, []byte("print(1)\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := BirthTime(path)
	if err != nil {
		t.Fatalf("BirthTime error: %v", err)
	}
	if got.IsZero() || got.After(time.Now().Add(time.Minute)) {
		t.Fatalf("BirthTime = %v, want a recent time", got)
	}
}

func TestBirthTime_Errors(t *testing.T) {
	if _, err := BirthTime("https://example.com/a.go"); !errors.Is(err, ErrNotLocal) {
		t.Fatalf("expected ErrNotLocal, got %v", err)
	}
	if _, err := BirthTime(filepath.Join(t.TempDir(), "missing.go")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

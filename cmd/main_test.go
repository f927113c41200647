package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("FILEHEADER_CONFIG", "")
	t.Setenv("FILEHEADER_AUTHOR", "Ada")
	t.Setenv("FILEHEADER_EMAIL", "ada@x.io")
	t.Setenv("FILEHEADER_AUTH_SECRET", "")
	t.Setenv("FILEHEADER_UPDATE_INTERVAL_SECONDS", "")
	t.Setenv("PORT", "")
	t.Chdir(t.TempDir())
}

func TestRun_StartsServerWithValidConfig(t *testing.T) {
	setTestEnv(t)
	t.Setenv("PORT", "4321")

	var servedAddr string
	var servedHandler http.Handler

	serve := func(addr string, handler http.Handler) error {
		servedAddr = addr
		servedHandler = handler
		return nil
	}

	if err := run(context.Background(), serve); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}

	if servedAddr != ":4321" {
		t.Fatalf("serve addr = %q, want :4321", servedAddr)
	}
	if servedHandler == nil {
		t.Fatalf("serve handler is nil")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	servedHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/health status = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	servedHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"service":"fileheader"`) ||
		!strings.Contains(rec.Body.String(), `"updateInterval":"2m0s"`) {
		t.Fatalf("/ = %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	body := `{"uri":"untitled:1","languageId":"python","text":""}`
	req = httptest.NewRequest(http.MethodPost, "/documents/insert", strings.NewReader(body))
	servedHandler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "@Author:") {
		t.Fatalf("/documents/insert = %d %q", rec.Code, rec.Body.String())
	}
}

func TestRun_ReturnsErrorWhenServeFails(t *testing.T) {
	setTestEnv(t)

	expected := errors.New("listen failed")
	err := run(context.Background(), func(string, http.Handler) error {
		return expected
	})

	if err == nil {
		t.Fatalf("run() error = nil, want %v", expected)
	}
	if !errors.Is(err, expected) {
		t.Fatalf("run() error = %v, want to wrap %v", err, expected)
	}
}

func TestRun_InvalidConfig(t *testing.T) {
	setTestEnv(t)
	t.Setenv("FILEHEADER_UPDATE_INTERVAL_SECONDS", "-1")

	called := false
	err := run(context.Background(), func(string, http.Handler) error {
		called = true
		return nil
	})
	if err == nil {
		t.Fatal("run() error = nil, want configuration error")
	}
	if called {
		t.Fatal("serve should not be called when configuration is invalid")
	}
}

func TestRun_LoadsDotEnv(t *testing.T) {
	setTestEnv(t)
	os.Unsetenv("PORT")
	if err := os.WriteFile(".env", []byte("PORT=5555\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	var servedAddr string
	if err := run(context.Background(), func(addr string, _ http.Handler) error {
		servedAddr = addr
		return nil
	}); err != nil {
		t.Fatalf("run() returned error: %v", err)
	}
	if servedAddr != ":5555" {
		t.Fatalf("serve addr = %q, want :5555 from .env", servedAddr)
	}
}

package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cexll/fileheader/internal/filemeta"
	"github.com/cexll/fileheader/internal/header"
	"github.com/cexll/fileheader/internal/identity"
	"github.com/cexll/fileheader/internal/session"
)

// ErrUnsupportedLanguage is returned by Insert when the language has no header template.
var ErrUnsupportedLanguage = errors.New("no header template for language")

// Document is a read-only snapshot of an open document.
type Document struct {
	URI        string `json:"uri"`
	LanguageID string `json:"languageId"`
	Text       string `json:"text"`
	Untitled   bool   `json:"untitled"`
}

// Action describes what an operation did to a document.
type Action string

const (
	ActionNone     Action = "none"
	ActionInserted Action = "inserted"
	ActionUpdated  Action = "updated"
)

// Result is the outcome of an operation. Text holds the full replacement document
// whenever Action is not ActionNone; hosts apply it as a single edit.
type Result struct {
	Action  Action `json:"action"`
	Text    string `json:"text,omitempty"`
	Warning string `json:"warning,omitempty"`

	// stamped is the throttle mark recorded for this result, zero if none.
	stamped time.Time
}

// Changed reports whether the host has an edit to apply.
func (r Result) Changed() bool {
	return r.Action != ActionNone
}

// Config controls the save-time behaviour of the engine.
type Config struct {
	DateFormat       string
	Header           header.Options
	AutoInsertOnSave bool
	// UpdateInterval throttles LastEditTime rewrites per document; 0 disables the throttle.
	UpdateInterval time.Duration
}

// Engine decides between inserting a header and refreshing an existing one.
// Operations are serialized; each runs to completion before the next starts.
type Engine struct {
	mu        sync.Mutex
	cfg       Config
	identity  *identity.Resolver
	throttle  *session.Throttle
	now       func() time.Time
	birthTime func(uri string) (time.Time, error)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithBirthTime replaces the file creation time query.
func WithBirthTime(fn func(uri string) (time.Time, error)) Option {
	return func(e *Engine) { e.birthTime = fn }
}

// New creates an engine. A nil resolver renders empty author fields.
func New(cfg Config, resolver *identity.Resolver, opts ...Option) (*Engine, error) {
	if strings.TrimSpace(cfg.DateFormat) == "" {
		cfg.DateFormat = header.DefaultDateFormat
	}
	if resolver == nil {
		resolver = &identity.Resolver{}
	}
	throttle, err := session.NewThrottle(cfg.UpdateInterval)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:       cfg,
		identity:  resolver,
		throttle:  throttle,
		now:       time.Now,
		birthTime: filemeta.BirthTime,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// WillSave runs the save-time pass: insert a header when none exists and
// auto-insert is on, otherwise refresh LastEditTime and LastEditors.
func (e *Engine) WillSave(ctx context.Context, doc Document) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	opts := e.cfg.Header
	if !opts.LastEditors && !opts.LastEditTime && !e.cfg.AutoInsertOnSave {
		return Result{Action: ActionNone}, nil
	}

	if !header.HasHeader(doc.Text, header.DefaultScanLines) {
		if !e.cfg.AutoInsertOnSave {
			return Result{Action: ActionNone}, nil
		}
		isNew := strings.TrimSpace(doc.Text) == ""
		res, err := e.insert(ctx, doc, isNew)
		if errors.Is(err, ErrUnsupportedLanguage) {
			log.Printf("Warning: skipping header insertion for %s: %v", doc.URI, err)
			return res, nil
		}
		return res, err
	}

	return e.refresh(ctx, doc), nil
}

// Insert prepends a freshly rendered header regardless of detector or throttle state.
func (e *Engine) Insert(ctx context.Context, doc Document) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.insert(ctx, doc, true)
}

// Close forgets the throttle state of a closed document.
func (e *Engine) Close(uri string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.throttle.Evict(uri)
}

// Abandon reports that the host could not apply res to the document at uri.
// A timestamp rewrite recorded for res stops suppressing the next save.
func (e *Engine) Abandon(uri string, res Result) {
	if res.stamped.IsZero() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	e.throttle.Unmark(uri, res.stamped)
}

// UpdateInterval returns the LastEditTime throttle window.
func (e *Engine) UpdateInterval() time.Duration {
	return e.throttle.Interval()
}

// Tracked returns the number of documents with throttle state.
func (e *Engine) Tracked() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.throttle.Len()
}

func (e *Engine) insert(ctx context.Context, doc Document, isNew bool) (Result, error) {
	if _, ok := header.TemplateFor(doc.LanguageID); !ok {
		return Result{
			Action:  ActionNone,
			Warning: fmt.Sprintf("No header template for language: %s", doc.LanguageID),
		}, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, doc.LanguageID)
	}

	now := e.now()
	created := now
	if !isNew && !doc.Untitled {
		created = e.creationTime(doc.URI, now)
	}

	who := e.identity.Resolve(ctx, filemeta.Dir(doc.URI))
	values := header.Values{
		Author:       who.Name,
		Email:        who.Email,
		CreateTime:   header.FormatTime(created, e.cfg.DateFormat),
		LastEditTime: header.FormatTime(now, e.cfg.DateFormat),
		CurrentYear:  strconv.Itoa(now.Year()),
	}

	text, ok := header.RenderFor(doc.LanguageID, values, e.cfg.Header)
	if !ok {
		return Result{Action: ActionNone}, nil
	}
	eol := lineEnding(doc.Text)
	if eol != "\n" {
		text = strings.ReplaceAll(text, "\n", eol)
	}
	return Result{Action: ActionInserted, Text: text + eol + eol + doc.Text}, nil
}

// lineEnding returns "\r\n" when the first line break in text is CRLF.
func lineEnding(text string) string {
	if i := strings.IndexByte(text, '\n'); i > 0 && text[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}

func (e *Engine) creationTime(uri string, now time.Time) time.Time {
	created, err := e.birthTime(uri)
	if err != nil {
		if !errors.Is(err, filemeta.ErrNotLocal) {
			log.Printf("Warning: failed to get creation time for %s: %v", uri, err)
		}
		return now
	}
	return created
}

func (e *Engine) refresh(ctx context.Context, doc Document) Result {
	opts := e.cfg.Header
	updated := doc.Text
	now := e.now()
	var stamped time.Time

	if opts.LastEditTime && e.throttle.Due(doc.URI, now) {
		next := header.UpdateField(updated, header.KeyLastEditTime, header.FormatTime(now, e.cfg.DateFormat), opts)
		if next != updated {
			updated = next
			e.throttle.Mark(doc.URI, now)
			stamped = now
		}
	}

	if opts.LastEditors {
		if name := e.identity.Name(ctx, filemeta.Dir(doc.URI)); name != "" {
			updated = header.UpdateField(updated, header.KeyLastEditors, name, opts)
		}
	}

	if updated == doc.Text {
		return Result{Action: ActionNone}
	}
	return Result{Action: ActionUpdated, Text: updated, stamped: stamped}
}

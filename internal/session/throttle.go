package session

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultInterval is the minimum gap between two LastEditTime rewrites of one document.
const DefaultInterval = 120 * time.Second

// maxTracked caps the table in case a host never reports closed documents.
const maxTracked = 4096

// Throttle remembers when each open document last had its edit time rewritten.
// Entries are created on Mark and dropped by Evict when the document closes.
type Throttle struct {
	interval time.Duration
	entries  *lru.Cache[string, time.Time]
}

// NewThrottle creates a throttle; an interval of 0 makes every document always due.
func NewThrottle(interval time.Duration) (*Throttle, error) {
	if interval < 0 {
		return nil, fmt.Errorf("throttle interval must not be negative: %s", interval)
	}
	entries, err := lru.New[string, time.Time](maxTracked)
	if err != nil {
		return nil, fmt.Errorf("failed to create throttle table: %w", err)
	}
	return &Throttle{interval: interval, entries: entries}, nil
}

// Interval returns the configured minimum gap.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}

// Due reports whether uri may be rewritten at now.
func (t *Throttle) Due(uri string, now time.Time) bool {
	if t.interval == 0 {
		return true
	}
	last, ok := t.entries.Get(uri)
	if !ok {
		return true
	}
	return now.Sub(last) >= t.interval
}

// Mark records a successful rewrite of uri at now.
func (t *Throttle) Mark(uri string, now time.Time) {
	t.entries.Add(uri, now)
}

// Evict forgets uri. Safe to call for documents that were never marked.
func (t *Throttle) Evict(uri string) {
	t.entries.Remove(uri)
}

// Unmark forgets uri only if its latest mark is at. A newer mark is kept.
func (t *Throttle) Unmark(uri string, at time.Time) {
	if last, ok := t.entries.Peek(uri); ok && last.Equal(at) {
		t.entries.Remove(uri)
	}
}

// Len returns the number of tracked documents.
func (t *Throttle) Len() int {
	return t.entries.Len()
}

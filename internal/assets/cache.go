// Package assets serves the small image/icon files the seat map renders
// (seat glyphs, stage decorations) through an explicit memoizing cache.
// Each cache is constructed per context instead of living in package
// state, so loading races are deterministic in tests.
package assets

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Loader fetches the raw bytes for a key on first use.
type Loader func(ctx context.Context, key string) ([]byte, error)

// entry is either pending (ready not yet closed) or settled with data or
// an error.  Waiters block on ready so each key loads exactly once.
type entry struct {
	ready chan struct{}
	data  []byte
	err   error
}

// Cache memoizes Loader results by key.  Concurrent Gets for the same
// key coalesce into a single load.
type Cache struct {
	mu      sync.Mutex
	load    Loader
	entries map[string]*entry
}

// NewCache constructs a cache around the loader.
func NewCache(load Loader) *Cache {
	return &Cache{load: load, entries: make(map[string]*entry)}
}

// Get returns the bytes for key, loading them on first use.  A failed
// load is not memoized, so a later Get retries.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if !ok {
		e = &entry{ready: make(chan struct{})}
		c.entries[key] = e
		c.mu.Unlock()

		e.data, e.err = c.load(ctx, key)
		if e.err != nil {
			c.mu.Lock()
			delete(c.entries, key)
			c.mu.Unlock()
		}
		close(e.ready)
		return e.data, e.err
	}
	c.mu.Unlock()

	select {
	case <-e.ready:
		return e.data, e.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// DirLoader loads keys as files under dir, refusing path escapes.
func DirLoader(dir string) Loader {
	return func(_ context.Context, key string) ([]byte, error) {
		clean := filepath.Clean(key)
		if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
			return nil, os.ErrNotExist
		}
		return os.ReadFile(filepath.Join(dir, clean))
	}
}

package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"aipulse/pkg/contracts/domain"
)

// cacheEntry holds a loaded table together with the file identity it was
// built from. A table is reused only while the identity matches.
type cacheEntry struct {
	table   *domain.SurveyTable
	modTime time.Time
	size    int64
}

// LoadObserver is notified after each actual file load attempt. Cache hits
// do not reach the loader and are not observed.
type LoadObserver func(responses int, err error)

// TableCache is a read-through cache over a Loader, keyed on source file
// identity (path + modification time + size). It is an optimization only:
// a cache miss recomputes from scratch and must produce an identical table.
type TableCache struct {
	loader   *Loader
	logger   *slog.Logger
	observer LoadObserver

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewTableCache creates a read-through cache around the given loader.
func NewTableCache(loader *Loader, logger *slog.Logger) *TableCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &TableCache{
		loader:  loader,
		logger:  logger,
		entries: make(map[string]cacheEntry),
	}
}

// OnLoad registers an observer for actual load attempts. Intended for
// instrumentation; must be set before the cache is shared across goroutines.
func (c *TableCache) OnLoad(observer LoadObserver) {
	c.observer = observer
}

// Get returns the normalized table for path, loading it on a miss or when
// the file changed since the cached load. The error from an unreadable file
// is passed through with an empty table, matching the loader contract.
func (c *TableCache) Get(ctx context.Context, path string) (*domain.SurveyTable, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.mu.Lock()
		delete(c.entries, path)
		c.mu.Unlock()
		err = fmt.Errorf("stat survey file %s: %w", path, err)
		if c.observer != nil {
			c.observer(0, err)
		}
		return &domain.SurveyTable{}, err
	}

	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	if ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		c.logger.DebugContext(ctx, "survey table cache hit",
			slog.String("path", path),
			slog.Int("responses", entry.table.Len()))
		return entry.table, nil
	}

	table, err := c.loader.Load(ctx, path)
	if c.observer != nil {
		c.observer(table.Len(), err)
	}
	if err != nil {
		return table, err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{table: table, modTime: info.ModTime(), size: info.Size()}
	c.mu.Unlock()

	c.logger.InfoContext(ctx, "survey table cached",
		slog.String("path", path),
		slog.Time("mod_time", info.ModTime()),
		slog.Int("responses", table.Len()))

	return table, nil
}

// Invalidate drops the cached table for path, forcing the next Get to reload.
func (c *TableCache) Invalidate(path string) {
	c.mu.Lock()
	delete(c.entries, path)
	c.mu.Unlock()
}

// Clear drops every cached table.
func (c *TableCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

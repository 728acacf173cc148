// Package cache implements the Parse Cache (spec component C5): a
// bounded LRU of absolute path to the CodeAnalysis produced by reading,
// detecting and analyzing that path, invalidated on mtime change. It
// follows the teacher's pattern of a small mutex-guarded struct wrapping
// a third-party LRU rather than hand-rolling eviction.
package cache

import (
	"os"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vibecoding/vct/internal/core"
	"github.com/vibecoding/vct/internal/providers"
	"github.com/vibecoding/vct/internal/vctrors"
)

// DefaultCapacity is the compile-time LRU capacity the spec calls for.
const DefaultCapacity = 100

type entry struct {
	modTime time.Time
	result  *core.CodeAnalysis
}

// ParseCache caches per-file CodeAnalysis results keyed by absolute path.
type ParseCache struct {
	mu    sync.RWMutex
	lru   *lru.Cache[string, entry]
}

// New constructs a ParseCache with the given capacity. A non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *ParseCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	l, _ := lru.New[string, entry](capacity)
	return &ParseCache{lru: l}
}

// GetOrParse returns the cached analysis for path if its stored mtime
// still matches the file on disk; otherwise it reads, detects and
// analyzes the file and populates the cache.
func (c *ParseCache) GetOrParse(path string) (*core.CodeAnalysis, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, vctrors.WithFile(vctrors.NotFound, path, err)
		}
		return nil, vctrors.WithFile(vctrors.IOError, path, err)
	}
	mtime := info.ModTime()

	c.mu.RLock()
	e, ok := c.lru.Peek(path)
	c.mu.RUnlock()
	if ok && e.modTime.Equal(mtime) {
		c.mu.Lock()
		c.lru.Get(path) // promote to MRU
		c.mu.Unlock()
		return e.result, nil
	}

	result, err := providers.Analyze(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lru.Add(path, entry{modTime: mtime, result: result})
	c.mu.Unlock()

	return result, nil
}

// Clear evicts every cached entry.
func (c *ParseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Invalidate evicts the entry for path, if any.
func (c *ParseCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(path)
}

// CleanupStale evicts entries whose backing file no longer exists.
func (c *ParseCache) CleanupStale() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, path := range c.lru.Keys() {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			c.lru.Remove(path)
		}
	}
}

// Stats reports the current entry count and a rough byte estimate.
type Stats struct {
	Entries      int
	EstimatedBytes int64
}

// Stats returns a cheap snapshot of cache occupancy. The byte estimate is
// a rough per-entry constant, not an exact measurement, matching the
// spec's "estimated bytes" wording.
func (c *ParseCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	const estimatedBytesPerEntry = 4096
	n := c.lru.Len()
	return Stats{Entries: n, EstimatedBytes: int64(n) * estimatedBytesPerEntry}
}

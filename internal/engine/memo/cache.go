package memo

import (
	"sync"

	"github.com/BauhouseConsortium/nirmanaflow/internal/core/domain"
)

// Key identifies one evaluation of one node. Two keys are equal exactly
// when the node, its parameters and everything upstream of it are
// unchanged.
type Key struct {
	Node   domain.NodeID
	Inputs uint64
	Params uint64
}

type entry struct {
	paths domain.PathSet
	fp    uint64
}

// Cache memoizes successful node outputs. Failures are never stored;
// a failing node re-runs on every evaluation until it is fixed.
type Cache struct {
	mu      sync.Mutex
	entries map[Key]entry
}

func NewCache() *Cache {
	return &Cache{entries: map[Key]entry{}}
}

// Get returns the cached paths and their output fingerprint. Callers
// must not mutate the returned set.
func (c *Cache) Get(k Key) (domain.PathSet, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[k]
	return e.paths, e.fp, ok
}

// Put stores a successful output with its precomputed fingerprint.
func (c *Cache) Put(k Key, paths domain.PathSet, fp uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[k] = entry{paths: paths, fp: fp}
}

// Reset drops every entry.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[Key]entry{}
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

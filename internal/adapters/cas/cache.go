package cas

import (
	"maps"
	"sync"

	"go.trai.ch/lunaria/internal/core/ports"
)

// ChangeCache owns the per-file checkpoint map shared by concurrent resolutions.
// All methods are safe for concurrent use.
type ChangeCache struct {
	store       ports.CacheStore
	domain      string
	fingerprint string
	force       bool

	mu      sync.RWMutex
	entries map[string]string
	dirty   bool
}

// NewChangeCache creates a cache for the given domain and configuration fingerprint.
// In force mode the cache never reads or persists anything.
func NewChangeCache(store ports.CacheStore, domain, fingerprint string, force bool) *ChangeCache {
	return &ChangeCache{
		store:       store,
		domain:      domain,
		fingerprint: fingerprint,
		force:       force,
		entries:     make(map[string]string),
	}
}

// Load reads the persisted checkpoints. It is a no-op in force mode.
func (c *ChangeCache) Load() error {
	if c.force {
		return nil
	}

	entries, err := c.store.Read(c.domain, c.fingerprint)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string, len(entries))
	maps.Copy(c.entries, entries)
	c.dirty = false
	return nil
}

// Get returns the checkpoint of path.
func (c *ChangeCache) Get(path string) (string, bool) {
	if c.force {
		return "", false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	hash, ok := c.entries[path]
	return hash, ok
}

// Set records hash as the checkpoint of path.
func (c *ChangeCache) Set(path, hash string) {
	if c.force {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries[path] == hash {
		return
	}
	c.entries[path] = hash
	c.dirty = true
}

// Len returns the number of checkpoints held in memory.
func (c *ChangeCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Flush persists the checkpoints when they changed since Load.
func (c *ChangeCache) Flush() error {
	if c.force {
		return nil
	}

	c.mu.RLock()
	if !c.dirty {
		c.mu.RUnlock()
		return nil
	}
	snapshot := maps.Clone(c.entries)
	c.mu.RUnlock()

	if err := c.store.Write(c.domain, c.fingerprint, snapshot); err != nil {
		return err
	}

	c.mu.Lock()
	c.dirty = false
	c.mu.Unlock()
	return nil
}

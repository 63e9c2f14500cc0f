package authz

import (
	"sync"
	"time"
)

// DefaultCacheTTL bounds how long a cached role may be served without
// re-consulting the identity store.
const DefaultCacheTTL = 5 * time.Minute

type cacheEntry struct {
	role       Role
	insertedAt time.Time
}

// RoleCache holds principal to role mappings for at most one TTL window.
// It is shared across concurrent calls; all methods are safe for concurrent
// use. Expired entries are dropped lazily on read, there is no sweeper.
type RoleCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewRoleCache constructs a cache with the given TTL. A non-positive ttl
// falls back to DefaultCacheTTL.
func NewRoleCache(ttl time.Duration) *RoleCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RoleCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached role if present and younger than the TTL. A stale
// entry behaves as a miss and is removed.
func (c *RoleCache) Get(principalID string) (Role, bool) {
	c.mu.RLock()
	entry, ok := c.entries[principalID]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if c.now().Sub(entry.insertedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have refreshed
		// the entry in the meantime.
		if current, ok := c.entries[principalID]; ok && c.now().Sub(current.insertedAt) >= c.ttl {
			delete(c.entries, principalID)
		}
		c.mu.Unlock()
		return "", false
	}
	return entry.role, true
}

// Set inserts or overwrites the entry with the current timestamp. Last
// writer wins.
func (c *RoleCache) Set(principalID string, role Role) {
	c.mu.Lock()
	c.entries[principalID] = cacheEntry{role: role, insertedAt: c.now()}
	c.mu.Unlock()
}

// Invalidate removes a single principal's entry.
func (c *RoleCache) Invalidate(principalID string) {
	c.mu.Lock()
	delete(c.entries, principalID)
	c.mu.Unlock()
}

// InvalidateAll clears every entry. Used after bulk role changes or an
// administrative reset.
func (c *RoleCache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

// Len reports the number of entries, stale ones included.
func (c *RoleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// TTL exposes the configured entry lifetime.
func (c *RoleCache) TTL() time.Duration {
	return c.ttl
}

package cache

import (
	"sync"
	"time"

	"notes-storage/internal/domain"
)

// cacheEntry holds a resolved identity together with its expiry.
type cacheEntry struct {
	identity  domain.CachedIdentity
	expiresAt time.Time
}

// live reports whether the entry may still be served at now. An entry is
// live strictly before its expiry instant; at or past it the entry is dead.
func (e *cacheEntry) live(now time.Time) bool {
	return now.Before(e.expiresAt)
}

// IdentityCache provides thread-safe in-memory caching of resolved
// identities with TTL. Implements domain.IdentityCache.
//
// Staleness is discovered lazily at Get time; the periodic sweep only
// reclaims memory for long-idle keys and does not affect correctness.
type IdentityCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	ttl     time.Duration
}

// NewIdentityCache creates a new identity cache with the specified TTL.
func NewIdentityCache(ttl time.Duration) *IdentityCache {
	c := &IdentityCache{
		entries: make(map[string]*cacheEntry),
		ttl:     ttl,
	}
	go c.cleanupLoop()
	return c
}

// Get retrieves a cached identity by session ID. An expired entry is
// treated as absent.
func (c *IdentityCache) Get(sessionID string) (*domain.CachedIdentity, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[sessionID]
	if !found || !entry.live(time.Now()) {
		return nil, false
	}
	identity := entry.identity
	return &identity, true
}

// Set stores an identity with a fresh expiry. Overwriting an existing entry
// for the same session is last-write-wins.
func (c *IdentityCache) Set(sessionID string, identity domain.CachedIdentity) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[sessionID] = &cacheEntry{
		identity:  identity,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// cleanup removes expired entries.
func (c *IdentityCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for id, entry := range c.entries {
		if !entry.live(now) {
			delete(c.entries, id)
		}
	}
}

// cleanupLoop runs periodic cleanup of expired entries.
func (c *IdentityCache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

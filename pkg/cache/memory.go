package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultMemoryEntries bounds a [MemoryCache] created with a non-positive
// size.
const DefaultMemoryEntries = 256

// MemoryCache is an in-process cache with per-entry TTL. When full, expired
// entries are dropped first, then the oldest stored entry.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	max     int
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	storedAt  time.Time
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// NewMemoryCache creates a memory cache holding at most maxEntries entries.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		max:     maxEntries,
		now:     time.Now,
	}
}

// Get retrieves a value. Expired entries are removed and reported as misses.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if e.expired(c.now()) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return append([]byte(nil), e.data...), true, nil
}

// Set stores a copy of data.
func (c *MemoryCache) Set(_ context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	e := memoryEntry{data: append([]byte(nil), data...), storedAt: now}
	if ttl > 0 {
		e.expiresAt = now.Add(ttl)
	}
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.max {
		c.evict(now)
	}
	c.entries[key] = e
	return nil
}

// Delete removes a value.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Len returns the number of stored entries, including expired ones not yet
// collected.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close drops all entries.
func (c *MemoryCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	return nil
}

// evict drops expired entries, or failing that the single best victim.
// c.mu must be held.
func (c *MemoryCache) evict(now time.Time) {
	var (
		victim   string
		victimAt time.Time
		found    bool
	)
	for k, e := range c.entries {
		if e.expired(now) {
			delete(c.entries, k)
			continue
		}
		if !found || e.storedAt.Before(victimAt) {
			victim, victimAt, found = k, e.storedAt, true
		}
	}
	if found && len(c.entries) >= c.max {
		delete(c.entries, victim)
	}
}

var _ Cache = (*MemoryCache)(nil)

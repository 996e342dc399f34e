package ekubo

import (
	"sync"
	"time"
)

// EntryStatus describes one cache entry.
type EntryStatus struct {
	Cached bool          `json:"cached"`
	Age    time.Duration `json:"age"`
	Fresh  bool          `json:"fresh"`
}

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// TTLCache holds values for a fixed time after they were fetched.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]entry[V]
}

func NewTTLCache[V any](ttl time.Duration, now func() time.Time) *TTLCache[V] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[V]{ttl: ttl, now: now, entries: make(map[string]entry[V])}
}

// Get returns a fresh value for key.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().Sub(e.fetchedAt) >= c.ttl {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}

// Len counts entries, stale ones included.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Status reports the age and freshness of key.
func (c *TTLCache[V]) Status(key string) EntryStatus {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return EntryStatus{}
	}
	age := c.now().Sub(e.fetchedAt)
	return EntryStatus{Cached: true, Age: age, Fresh: age < c.ttl}
}

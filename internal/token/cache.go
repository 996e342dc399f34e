package token

import (
	"sync"

	"swapScope/internal/model"
)

// MetaCache caches token metadata by canonical address.
type MetaCache struct {
	mu   sync.RWMutex
	data map[string]model.TokenMeta
}

func NewMetaCache() *MetaCache {
	return &MetaCache{data: make(map[string]model.TokenMeta)}
}

func (c *MetaCache) Get(address string) (model.TokenMeta, bool) {
	c.mu.RLock()
	meta, ok := c.data[Canonical(address)]
	c.mu.RUnlock()
	return meta, ok
}

func (c *MetaCache) Set(address string, meta model.TokenMeta) {
	c.mu.Lock()
	c.data[Canonical(address)] = meta
	c.mu.Unlock()
}

// Len returns the number of cached tokens.
func (c *MetaCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// Clear drops every cached entry.
func (c *MetaCache) Clear() {
	c.mu.Lock()
	c.data = make(map[string]model.TokenMeta)
	c.mu.Unlock()
}

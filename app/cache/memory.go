package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/aperam/ai-hub/app/feed"
)

const DefaultSize = 128

type memoryEntry struct {
	items     []feed.Item
	expiresAt time.Time
}

// MemoryCache is an in-process LRU. The LRU's own TTL bounds every entry; a
// shorter per-call TTL is honoured on read.
type MemoryCache struct {
	lru *expirable.LRU[string, memoryEntry]
	ttl time.Duration
	now func() time.Time
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &MemoryCache{
		lru: expirable.NewLRU[string, memoryEntry](size, nil, ttl),
		ttl: ttl,
		now: time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]feed.Item, bool, error) {
	entry, ok := c.lru.Get(key)
	if !ok {
		return nil, false, nil
	}

	if !c.now().Before(entry.expiresAt) {
		c.lru.Remove(key)
		return nil, false, nil
	}

	return cloneItems(entry.items), true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, items []feed.Item, ttl time.Duration) error {
	if ttl <= 0 || ttl > c.ttl {
		ttl = c.ttl
	}

	c.lru.Add(key, memoryEntry{
		items:     cloneItems(items),
		expiresAt: c.now().Add(ttl),
	})
	return nil
}

func (c *MemoryCache) Health(_ context.Context) map[string]any {
	return map[string]any{
		"status":      "healthy",
		"type":        "memory",
		"key_count":   c.lru.Len(),
		"ttl_seconds": int(c.ttl.Seconds()),
	}
}

func (c *MemoryCache) Close() error {
	c.lru.Purge()
	return nil
}

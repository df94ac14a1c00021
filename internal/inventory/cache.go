package inventory

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ownedCache holds the item counts each user owns. Entries are dropped on
// every write for that user and expire after ttl otherwise. A reader that
// loaded counts before a write finished cannot store them: every
// invalidation bumps gen and SetIfCurrent compares against it.
type ownedCache struct {
	mu  sync.Mutex
	gen uint64
	lru *expirable.LRU[string, map[string]int]
}

func newOwnedCache(size int, ttl time.Duration) *ownedCache {
	return &ownedCache{
		lru: expirable.NewLRU[string, map[string]int](size, nil, ttl),
	}
}

func (c *ownedCache) Get(userID string) (map[string]int, bool) {
	return c.lru.Get(userID)
}

// Generation is taken before reading storage and handed to SetIfCurrent.
func (c *ownedCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// SetIfCurrent stores counts unless an invalidation happened since gen was
// taken. The map must not be modified afterwards.
func (c *ownedCache) SetIfCurrent(userID string, gen uint64, counts map[string]int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.lru.Add(userID, counts)
	return true
}

func (c *ownedCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Remove(userID)
}

func (c *ownedCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Purge()
}

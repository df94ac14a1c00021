package catalog

import (
	"sort"

	"github.com/osse101/MathCatch_Go/internal/domain"
)

// Catalog is the read-only set of catchable items
type Catalog interface {
	Lookup(key string) (domain.Item, bool)
	All() []domain.Item
}

// Static is an immutable in-memory catalog
type Static struct {
	items map[string]domain.Item
	keys  []string
}

// New builds a catalog from items. Later duplicates replace earlier ones.
func New(items []domain.Item) *Static {
	c := &Static{items: make(map[string]domain.Item, len(items))}
	for _, it := range items {
		if _, exists := c.items[it.Key]; !exists {
			c.keys = append(c.keys, it.Key)
		}
		c.items[it.Key] = it
	}
	sort.Strings(c.keys)
	return c
}

// Lookup returns the item for key
func (c *Static) Lookup(key string) (domain.Item, bool) {
	it, ok := c.items[key]
	return it, ok
}

// All returns every item ordered by key
func (c *Static) All() []domain.Item {
	out := make([]domain.Item, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.items[k])
	}
	return out
}

// Keys returns every item key in sorted order
func (c *Static) Keys() []string {
	out := make([]string, len(c.keys))
	copy(out, c.keys)
	return out
}

// Len returns the number of items
func (c *Static) Len() int {
	return len(c.keys)
}

// Contains reports whether key is in the catalog
func (c *Static) Contains(key string) bool {
	_, ok := c.items[key]
	return ok
}

// ByCategory groups items by category, keys sorted within each group
func (c *Static) ByCategory() map[domain.Category][]domain.Item {
	out := make(map[domain.Category][]domain.Item)
	for _, k := range c.keys {
		it := c.items[k]
		out[it.Category] = append(out[it.Category], it)
	}
	return out
}

// Package cache memoizes cut widths by partition.
//
// [WidthCache] is a fixed-capacity LRU keyed by the value of a partition
// bit set, so two equal partitions share an entry regardless of where
// they came from. Both [WidthCache.Add] and a successful
// [WidthCache.TryGet] mark the entry as most recently used; when the cache
// is full the least recently used entry is evicted.
//
// WidthCache is not safe for concurrent use. The search context serializes
// access behind its own lock.
package cache

import (
	"fmt"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/matzehuels/rankwidth/pkg/bitset"
)

// DefaultCapacity is the number of partitions kept by default.
const DefaultCapacity = 16 * 1024

// Stats counts cache traffic since creation.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// WidthCache maps partitions to their widths.
type WidthCache struct {
	lru   *simplelru.LRU[string, int]
	stats Stats
}

// New creates a cache holding at most capacity partitions.
func New(capacity int) (*WidthCache, error) {
	if capacity < 1 {
		return nil, fmt.Errorf("cache capacity must be positive, got %d", capacity)
	}
	c := &WidthCache{}
	lru, err := simplelru.NewLRU[string, int](capacity, func(string, int) {
		c.stats.Evictions++
	})
	if err != nil {
		return nil, err
	}
	c.lru = lru
	return c, nil
}

// Add stores the width of part, replacing and promoting an existing entry.
// The key is copied, so part may be reused afterwards.
func (c *WidthCache) Add(part *bitset.BitSet, width int) {
	c.lru.Add(part.Key(), width)
}

// TryGet returns the cached width of part and promotes the entry.
func (c *WidthCache) TryGet(part *bitset.BitSet) (int, bool) {
	w, ok := c.lru.Get(part.Key())
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	return w, ok
}

// Contains reports whether part is cached without promoting it.
func (c *WidthCache) Contains(part *bitset.BitSet) bool {
	return c.lru.Contains(part.Key())
}

// Len returns the number of cached partitions.
func (c *WidthCache) Len() int { return c.lru.Len() }

// Stats returns the traffic counters.
func (c *WidthCache) Stats() Stats { return c.stats }

// Purge drops every entry. Purged entries count as evictions.
func (c *WidthCache) Purge() { c.lru.Purge() }

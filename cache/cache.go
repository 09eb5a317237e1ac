// Package cache provides a generic, thread-safe LRU cache.
//
// The extraction engine uses it to memoize ISO-8601 timestamp parses: the
// same timestamp string recurs across events and inherited fields within a
// document batch.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// Cache is a generic thread-safe LRU cache.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	items    map[K]*list.Element
	order    *list.List
	capacity int

	hits   atomic.Uint64
	misses atomic.Uint64
}

// pair holds one cached key/value.
type pair[K comparable, V any] struct {
	key   K
	value V
}

// New creates a Cache with the specified capacity. When the cache is full,
// the least recently used item is evicted. Capacities <= 0 default to 128.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = 128
	}
	return &Cache[K, V]{
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
		capacity: capacity,
	}
}

// Get retrieves a value from the cache. Accessing an item moves it to the
// front of the LRU order.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	c.order.MoveToFront(e)
	return e.Value.(pair[K, V]).value, true
}

// Set stores a value in the cache, evicting the least recently used item
// when the cache is at capacity.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		e.Value = pair[K, V]{key: key, value: value}
		c.order.MoveToFront(e)
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(pair[K, V]).key)
		}
	}
	c.items[key] = c.order.PushFront(pair[K, V]{key: key, value: value})
}

// Len returns the number of cached items.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Hits returns the number of cache hits.
func (c *Cache[K, V]) Hits() uint64 {
	return c.hits.Load()
}

// Misses returns the number of cache misses.
func (c *Cache[K, V]) Misses() uint64 {
	return c.misses.Load()
}

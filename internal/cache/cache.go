// Package cache provides a small generic keyed cache used to hold one
// method executor per distinct method.
package cache

import "sync"

// Cache is a generic concurrency-safe map. Entries are immutable once
// stored; Set on an existing key is a no-op so that concurrent
// first-time computations agree on a single winner.
type Cache[K comparable, V any] struct {
	items map[K]V
	mutex sync.RWMutex
}

// New creates an empty cache
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{items: make(map[K]V)}
}

// Get retrieves an item from the cache
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	v, ok := c.items[key]
	return v, ok
}

// Set stores an item under key unless the key is already present, and
// returns the value that ended up cached.
func (c *Cache[K, V]) Set(key K, value V) V {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if existing, ok := c.items[key]; ok {
		return existing
	}
	c.items[key] = value
	return value
}

// Delete removes an item from the cache
func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
}

// Clear removes all items from the cache
func (c *Cache[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items = make(map[K]V)
}

// Len returns the number of cached items
func (c *Cache[K, V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.items)
}

// Values returns a snapshot of all cached values
func (c *Cache[K, V]) Values() []V {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	values := make([]V, 0, len(c.items))
	for _, v := range c.items {
		values = append(values, v)
	}
	return values
}

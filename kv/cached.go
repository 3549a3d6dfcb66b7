package kv

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore wraps a Store with a read-through LRU cache.
//
// Leaf and interior node records are write-once, so cached reads can never
// go stale. Mutable keys (the per-namespace state key) must bypass the cache:
// callers declare them via the skip function.
type CachedStore struct {
	inner Store
	cache *lru.Cache[string, string]
	skip  func(key string) bool
}

// NewCachedStore wraps inner with an LRU cache of the given size.
// Keys for which skip returns true are always read from and written through
// to the inner store without caching. A nil skip caches every key.
func NewCachedStore(inner Store, size int, skip func(key string) bool) (*CachedStore, error) {
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating lru cache: %w", err)
	}
	if skip == nil {
		skip = func(string) bool { return false }
	}
	return &CachedStore{
		inner: inner,
		cache: cache,
		skip:  skip,
	}, nil
}

// Get returns the value stored under key, serving immutable keys from cache
// when possible.
func (c *CachedStore) Get(key string) (string, error) {
	if c.skip(key) {
		return c.inner.Get(key)
	}

	if value, ok := c.cache.Get(key); ok {
		return value, nil
	}

	value, err := c.inner.Get(key)
	if err != nil {
		return "", err
	}
	c.cache.Add(key, value)
	return value, nil
}

// Set stores value under key and populates the cache for immutable keys.
func (c *CachedStore) Set(key, value string) error {
	if err := c.inner.Set(key, value); err != nil {
		return err
	}
	if !c.skip(key) {
		c.cache.Add(key, value)
	}
	return nil
}

// Has reports whether a value exists under key.
func (c *CachedStore) Has(key string) (bool, error) {
	if !c.skip(key) {
		if _, ok := c.cache.Get(key); ok {
			return true, nil
		}
	}
	return c.inner.Has(key)
}

// Close closes the underlying store.
func (c *CachedStore) Close() error {
	c.cache.Purge()
	return c.inner.Close()
}

var _ Store = (*CachedStore)(nil)

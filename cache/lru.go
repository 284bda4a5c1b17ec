// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package cache holds read-through caches in front of the stores.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"
)

// LRU is a typed read-through cache that counts its hits and misses.
type LRU[K comparable, V any] struct {
	inner     *lru.Cache
	hit, miss atomic.Int64
}

// NewLRU creates a cache holding at most size entries. size must be positive.
func NewLRU[K comparable, V any](size int) (*LRU[K, V], error) {
	inner, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &LRU[K, V]{inner: inner}, nil
}

// GetOrLoad returns the cached value of key, calling load on a miss.
// Failed loads are not cached.
func (c *LRU[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if v, ok := c.inner.Get(key); ok {
		c.hit.Add(1)
		return v.(V), nil
	}
	c.miss.Add(1)
	v, err := load(key)
	if err != nil {
		return v, err
	}
	c.inner.Add(key, v)
	return v, nil
}

func (c *LRU[K, V]) Add(key K, value V) {
	c.inner.Add(key, value)
}

func (c *LRU[K, V]) Contains(key K) bool {
	return c.inner.Contains(key)
}

// Purge drops every entry. The counters are kept.
func (c *LRU[K, V]) Purge() {
	c.inner.Purge()
}

// Stats returns hit and miss counts of GetOrLoad.
func (c *LRU[K, V]) Stats() (hit, miss int64) {
	return c.hit.Load(), c.miss.Load()
}

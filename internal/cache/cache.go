// Package cache provides a named, concurrency-safe key/value cache bounded by
// entry count and an optional time-to-live.
//
// The cache is never authoritative: a miss only means the caller has to go
// back to the store it is memoizing.
package cache

import (
	"sync/atomic"
	"time"

	utilcache "k8s.io/apimachinery/pkg/util/cache"
	"k8s.io/utils/clock"

	"github.com/MKhiriev/go-inventory-sync/models"
)

// noExpiry stands in for "no TTL"; the underlying cache always needs one.
const noExpiry = 100 * 365 * 24 * time.Hour

// Cache memoizes values of type V by key K. Entries are evicted least recently
// used first once maxEntries is exceeded, and expire ttl after insertion.
// Expired entries are purged lazily when they are looked up.
type Cache[K comparable, V any] struct {
	name       string
	maxEntries int
	ttl        time.Duration
	lru        *utilcache.LRUExpireCache

	hits   atomic.Uint64
	misses atomic.Uint64
}

type options struct {
	ttl   time.Duration
	clock clock.PassiveClock
}

// Option customizes a Cache.
type Option func(*options)

// WithTTL expires entries d after they were set. Zero or negative disables
// expiry by age.
func WithTTL(d time.Duration) Option {
	return func(o *options) { o.ttl = d }
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clock.PassiveClock) Option {
	return func(o *options) { o.clock = c }
}

// New creates a cache. maxEntries below 1 is treated as 1.
func New[K comparable, V any](name string, maxEntries int, opts ...Option) *Cache[K, V] {
	o := options{clock: clock.RealClock{}}
	for _, opt := range opts {
		opt(&o)
	}
	if maxEntries < 1 {
		maxEntries = 1
	}

	ttl := o.ttl
	if ttl <= 0 {
		ttl = noExpiry
	}

	return &Cache[K, V]{
		name:       name,
		maxEntries: maxEntries,
		ttl:        ttl,
		lru:        utilcache.NewLRUExpireCacheWithClock(maxEntries, o.clock),
	}
}

// Get returns the cached value and true, or the zero value and false for
// missing, expired or evicted keys.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	v, ok := c.lru.Get(key)
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	return v.(V), true
}

// Set stores value under key, replacing any previous value and resetting its
// age.
func (c *Cache[K, V]) Set(key K, value V) {
	c.lru.Add(key, value, c.ttl)
}

func (c *Cache[K, V]) Remove(key K) {
	c.lru.Remove(key)
}

// Clear drops all entries. Hit and miss counters are kept.
func (c *Cache[K, V]) Clear() {
	c.lru.RemoveAll(func(any) bool { return true })
}

// Len returns the number of unexpired entries.
func (c *Cache[K, V]) Len() int {
	return len(c.lru.Keys())
}

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() models.CacheStatistics {
	return models.CacheStatistics{
		Name:       c.name,
		Entries:    c.Len(),
		MaxEntries: c.maxEntries,
		Hits:       c.hits.Load(),
		Misses:     c.misses.Load(),
	}
}

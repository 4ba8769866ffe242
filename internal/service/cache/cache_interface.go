// Package cache defines the catalog cache contracts and the shared Redis tier.
package cache

import "errors"

// ErrCacheMiss is returned by the shared tier when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache is an in-process cache of immutable values keyed by id.
// Set replaces the stored value; values are never mutated in place.
type Cache[V any] interface {
	Get(key string) (V, bool)
	Set(key string, value V)
	Invalidate(key string)
	Clear()
	Stop()
}

// Metrics provides cache performance metrics.
type Metrics struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
	Capacity  int
}

// CacheWithMetrics extends Cache with metrics reporting.
type CacheWithMetrics[V any] interface {
	Cache[V]
	Metrics() Metrics
}

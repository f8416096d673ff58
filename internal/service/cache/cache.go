// Package cache provides a short-TTL cache for the store roster so bursts of
// planning requests share one database round-trip.
package cache

import (
	"sync"
	"time"

	"github.com/guttosm/fulfillment-service/internal/domain/model"
	"github.com/guttosm/fulfillment-service/internal/metrics"
)

// StoreCache caches the full store roster. Availability is evaluated per
// request against the clock, so caching raw store rows is safe as long as the
// TTL stays well below the granularity of opening hours.
type StoreCache interface {
	Get() ([]model.Store, bool)
	Set(stores []model.Store)
	Invalidate()
	Stop()
}

// ttlStoreCache is the default StoreCache implementation. Expiry is checked
// lazily on Get; there is no background janitor.
type ttlStoreCache struct {
	mu        sync.RWMutex
	stores    []model.Store
	fetchedAt time.Time
	ttl       time.Duration
}

// NewStoreCache creates a StoreCache with the given TTL.
// A non-positive TTL disables caching entirely: Get never hits.
func NewStoreCache(ttl time.Duration) StoreCache {
	return &ttlStoreCache{ttl: ttl}
}

// Get returns the cached roster and whether it is still fresh. The returned
// slice is a copy so callers cannot mutate the cached rows.
func (c *ttlStoreCache) Get() ([]model.Store, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stores == nil || c.ttl <= 0 || time.Since(c.fetchedAt) >= c.ttl {
		metrics.RecordStoreCacheOperation("get", "miss")
		return nil, false
	}

	metrics.RecordStoreCacheOperation("get", "hit")
	out := make([]model.Store, len(c.stores))
	copy(out, c.stores)
	return out, true
}

// Set replaces the cached roster and resets its freshness window.
func (c *ttlStoreCache) Set(stores []model.Store) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.stores = make([]model.Store, len(stores))
	copy(c.stores, stores)
	c.fetchedAt = time.Now()
	metrics.RecordStoreCacheOperation("set", "ok")
}

// Invalidate drops the cached roster. Called when store data changes out of
// band, e.g. after an administrative override flips.
func (c *ttlStoreCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stores = nil
	metrics.RecordStoreCacheOperation("invalidate", "ok")
}

// Stop releases cache resources. The TTL cache holds none beyond the roster
// itself, so Stop just drops it.
func (c *ttlStoreCache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stores = nil
}

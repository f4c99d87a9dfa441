// Copyright (C) 2025-2026 CardinalHQ, Inc
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, version 3.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package configcache is the process-local configuration cache. It never
// loads from the store; resolvers populate it on a miss and writers
// invalidate it after a store write returns.
//
// Every invalidation bumps a generation counter. A loader captures the
// generation before reading the store and installs its result with
// SetIfCurrent, which refuses the value if any invalidation happened in
// between. A reader therefore never sees a value older than the latest
// write that has returned.
package configcache

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/cardinalhq/shopconfig/internal/invalidation"
)

// DefaultTTL bounds how stale an entry can get when a cross-process
// invalidation is lost.
const DefaultTTL = time.Hour

type Cache struct {
	items     *ttlcache.Cache[string, any]
	ttl       time.Duration
	publisher invalidation.Publisher

	// mu orders SetIfCurrent against invalidations; gen is read lock-free.
	mu  sync.Mutex
	gen atomic.Uint64
}

var _ invalidation.LocalInvalidator = (*Cache)(nil)

type Option func(*Cache)

// WithTTL sets the default entry lifetime. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithPublisher broadcasts every Invalidate to other processes.
func WithPublisher(p invalidation.Publisher) Option {
	return func(c *Cache) {
		if p != nil {
			c.publisher = p
		}
	}
}

// New creates a cache and starts its expiry loop. Call Close to stop it.
func New(opts ...Option) *Cache {
	c := &Cache{
		ttl:       DefaultTTL,
		publisher: invalidation.NoopPublisher{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.items = ttlcache.New(
		ttlcache.WithTTL[string, any](c.ttl),
		ttlcache.WithDisableTouchOnHit[string, any](),
	)
	go c.items.Start()
	return c
}

// TTL returns the default entry lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	item := c.items.Get(key)
	if item == nil {
		recordMiss(key)
		return nil, false
	}
	recordHit(key)
	return item.Value(), true
}

// Set stores value under key unconditionally. ttl 0 uses the cache default.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.items.Set(key, value, c.entryTTL(ttl))
}

// Generation is the current invalidation generation. Capture it before
// reading the store and pass it to SetIfCurrent.
func (c *Cache) Generation() uint64 {
	return c.gen.Load()
}

// SetIfCurrent stores value only if no invalidation happened since gen was
// captured. It reports whether the value was stored.
func (c *Cache) SetIfCurrent(key string, value any, ttl time.Duration, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen.Load() != gen {
		return false
	}
	c.items.Set(key, value, c.entryTTL(ttl))
	return true
}

// Invalidate drops keys locally and broadcasts them. Broadcast failures are
// logged, not returned: the local cache is already correct and other
// processes fall back to the TTL.
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	c.dropLocal("local", keys)

	if err := c.publisher.Publish(ctx, invalidation.Message{Keys: keys}); err != nil {
		slog.Warn("Failed to broadcast cache invalidation",
			slog.Any("keys", keys),
			slog.Any("error", err))
	}
}

// InvalidateAll flushes every entry locally and broadcasts the flush.
func (c *Cache) InvalidateAll(ctx context.Context) {
	c.flushLocal()
	if err := c.publisher.Publish(ctx, invalidation.Message{All: true}); err != nil {
		slog.Warn("Failed to broadcast cache flush", slog.Any("error", err))
	}
}

// InvalidateLocal drops keys without broadcasting. Used for messages that
// arrived from another process.
func (c *Cache) InvalidateLocal(keys ...string) {
	c.dropLocal("remote", keys)
}

// InvalidateAllLocal flushes without broadcasting.
func (c *Cache) InvalidateAllLocal() {
	c.flushLocal()
}

// Len is the number of live entries.
func (c *Cache) Len() int {
	return c.items.Len()
}

// Close stops the expiry loop.
func (c *Cache) Close() {
	c.items.Stop()
}

func (c *Cache) dropLocal(source string, keys []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen.Add(1)
	for _, key := range keys {
		c.items.Delete(key)
		recordInvalidation(key, source)
	}
}

func (c *Cache) flushLocal() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen.Add(1)
	c.items.DeleteAll()
}

func (c *Cache) entryTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return c.ttl
	}
	return ttl
}

// Lookup is Get with a type assertion. A value of another type counts as
// absent.
func Lookup[T any](c *Cache, key string) (T, bool) {
	v, ok := c.Get(key)
	if !ok {
		var zero T
		return zero, false
	}
	typed, ok := v.(T)
	return typed, ok
}

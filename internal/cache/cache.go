// Package cache provides a TTL cache with single-flight request
// de-duplication, used for reference-data lookups (airport and airline
// lists) that feed the eligibility engine's inputs.
package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// FetchFunc loads the value for a key on a cache miss.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// Cache is a thread-safe TTL cache with single-flight de-duplication: when
// a fetch for a key is already in flight, concurrent callers wait for that
// fetch instead of issuing their own, and all of them observe its outcome.
//
// Entries expire after the configured TTL and are removed by Sweep (run it
// periodically via Run) or lazily on access. When the entry count exceeds
// the cap, the oldest entry by insertion order is evicted. Failed fetches
// are not cached and not retried by the cache; the error propagates to
// every waiter.
type Cache[V any] struct {
	ttl        time.Duration
	maxEntries int
	clock      clockwork.Clock
	logger     *slog.Logger

	mu      sync.Mutex
	entries map[string]*entry[V]
	order   []string // insertion order, oldest first
	pending map[string]*inflight[V]
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

type inflight[V any] struct {
	done chan struct{} // closed when the fetch completes
	val  V
	err  error
}

// Option configures a Cache.
type Option[V any] func(*Cache[V])

// WithClock swaps the time source, for tests.
func WithClock[V any](c clockwork.Clock) Option[V] {
	return func(cc *Cache[V]) { cc.clock = c }
}

// WithLogger attaches a logger for sweep and eviction diagnostics.
func WithLogger[V any](l *slog.Logger) Option[V] {
	return func(cc *Cache[V]) { cc.logger = l }
}

// New creates a cache holding at most maxEntries values for up to ttl each.
// maxEntries <= 0 means unbounded.
func New[V any](ttl time.Duration, maxEntries int, opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		ttl:        ttl,
		maxEntries: maxEntries,
		clock:      clockwork.NewRealClock(),
		logger:     slog.New(slog.DiscardHandler),
		entries:    make(map[string]*entry[V]),
		pending:    make(map[string]*inflight[V]),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrFetch returns the cached value for key, or runs fetch to obtain it.
// Concurrent calls for the same key share one fetch. A started fetch runs
// to completion; waiters cannot abort it, which is what guarantees they all
// see the same outcome.
func (c *Cache[V]) GetOrFetch(ctx context.Context, key string, fetch FetchFunc[V]) (V, error) {
	c.mu.Lock()

	if e, ok := c.entries[key]; ok {
		if c.clock.Now().Before(e.expiresAt) {
			v := e.value
			c.mu.Unlock()
			return v, nil
		}
		c.removeLocked(key)
	}

	if fl, ok := c.pending[key]; ok {
		c.mu.Unlock()
		<-fl.done
		return fl.val, fl.err
	}

	fl := &inflight[V]{done: make(chan struct{})}
	c.pending[key] = fl
	c.mu.Unlock()

	fl.val, fl.err = fetch(ctx)

	c.mu.Lock()
	delete(c.pending, key)
	if fl.err == nil {
		c.storeLocked(key, fl.val)
	}
	c.mu.Unlock()

	close(fl.done)
	return fl.val, fl.err
}

// Invalidate forcibly removes an entry. An in-flight fetch for the key is
// unaffected and will store its result as usual.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// Clear removes all cached entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry[V])
	c.order = c.order[:0]
}

// Len returns the number of cached entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep removes every expired entry and returns how many were evicted.
func (c *Cache[V]) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	evicted := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			c.removeLocked(key)
			evicted++
		}
	}
	return evicted
}

// Run sweeps expired entries every interval until the context is cancelled.
func (c *Cache[V]) Run(ctx context.Context, interval time.Duration) {
	ticker := c.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if n := c.Sweep(); n > 0 {
				c.logger.Debug("cache sweep evicted expired entries", "evicted", n)
			}
		}
	}
}

// storeLocked inserts a value and applies the entry cap. Caller holds mu.
func (c *Cache[V]) storeLocked(key string, value V) {
	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = &entry[V]{value: value, expiresAt: c.clock.Now().Add(c.ttl)}

	for c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		oldest := c.order[0]
		c.removeLocked(oldest)
		c.logger.Debug("cache at capacity, evicted oldest entry", "key", oldest)
	}
}

// removeLocked deletes an entry and its insertion-order slot. Caller holds mu.
func (c *Cache[V]) removeLocked(key string) {
	if _, ok := c.entries[key]; !ok {
		return
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Package cache provides a time-bounded cache for rendered pages.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Effiong06/Agri-Naija-Centre/internal/metrics"
)

// RenderFunc produces the body stored for a cache key
type RenderFunc func(ctx context.Context) ([]byte, error)

type entry struct {
	body      []byte
	expiresAt time.Time
}

// PageCache stores rendered pages until their expiry. Concurrent misses for
// the same key share a single render.
type PageCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	now     func() time.Time
}

// Option configures a PageCache
type Option func(*PageCache)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(c *PageCache) {
		c.now = now
	}
}

// New creates an empty page cache
func New(opts ...Option) *PageCache {
	c := &PageCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrRender returns the stored body for key while it is fresh. Otherwise it
// calls render, stores the result until now+ttl and returns it. Render errors
// are returned to every waiting caller and nothing is stored.
func (c *PageCache) GetOrRender(ctx context.Context, key string, ttl time.Duration, render RenderFunc) ([]byte, error) {
	if body, ok := c.lookup(key); ok {
		metrics.ObserveCacheLookup(key, true)
		return body, nil
	}
	metrics.ObserveCacheLookup(key, false)

	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// another caller may have stored it while we waited
		if body, ok := c.lookup(key); ok {
			return body, nil
		}

		// waiters share this render, so one caller going away must not fail the rest
		timer := metrics.NewTimer()
		body, err := render(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		timer.ObserveDuration(metrics.CacheRenderDuration.WithLabelValues(key))

		if ttl > 0 {
			c.mu.Lock()
			c.entries[key] = entry{body: body, expiresAt: c.now().Add(ttl)}
			c.mu.Unlock()
		}
		return body, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (c *PageCache) lookup(key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false
	}
	return e.body, true
}

// Purge drops every expired entry and returns how many were removed
func (c *PageCache) Purge() int {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored entries, fresh or not
func (c *PageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

package weather

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long fetched weather stays fresh.
const DefaultTTL = 10 * time.Minute

// maxEntries bounds each cache map. Lookups for new locations past the bound
// are served but not stored until a sweep frees room.
const maxEntries = 256

// Source is the set of lookups Cached wraps.
type Source interface {
	Configured() bool
	Current(ctx context.Context, location string) (*Current, error)
	Forecast(ctx context.Context, location string) ([]Day, error)
}

type entry[T any] struct {
	value     T
	fetchedAt time.Time
}

// Cached memoizes successful lookups per location for a fixed TTL.
// Errors are never cached, concurrent misses for the same location share one
// upstream call, and expired entries are swept out.
type Cached struct {
	src Source
	ttl time.Duration
	now func() time.Time

	group singleflight.Group

	mu        sync.Mutex
	current   map[string]entry[*Current]
	forecast  map[string]entry[[]Day]
	lastSweep time.Time
}

// NewCached wraps src. A non-positive ttl selects DefaultTTL.
func NewCached(src Source, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cached{
		src:      src,
		ttl:      ttl,
		now:      time.Now,
		current:  make(map[string]entry[*Current]),
		forecast: make(map[string]entry[[]Day]),
	}
}

func (c *Cached) Configured() bool {
	return c.src.Configured()
}

func (c *Cached) Current(ctx context.Context, location string) (*Current, error) {
	return lookup(ctx, c, c.current, "current|"+location, location, func(ctx context.Context) (*Current, error) {
		return c.src.Current(ctx, location)
	})
}

func (c *Cached) Forecast(ctx context.Context, location string) ([]Day, error) {
	return lookup(ctx, c, c.forecast, "forecast|"+location, location, func(ctx context.Context) ([]Day, error) {
		return c.src.Forecast(ctx, location)
	})
}

func lookup[T any](ctx context.Context, c *Cached, m map[string]entry[T], flight, key string, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := cachedValue(c, m, key); ok {
		return v, nil
	}

	// The shared call outlives any single caller's cancellation.
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(flight, func() (any, error) {
		if v, ok := cachedValue(c, m, key); ok {
			return v, nil
		}
		v, err := fetch(shared)
		if err != nil {
			return nil, err
		}
		c.store(func() {
			if _, ok := m[key]; ok || len(m) < maxEntries {
				m[key] = entry[T]{value: v, fetchedAt: c.now()}
			}
		})
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func cachedValue[T any](c *Cached, m map[string]entry[T], key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := m[key]; ok && c.now().Sub(e.fetchedAt) < c.ttl {
		return e.value, true
	}
	var zero T
	return zero, false
}

// store runs set under the lock after sweeping expired entries.
func (c *Cached) store(set func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if now.Sub(c.lastSweep) >= c.ttl {
		c.lastSweep = now
		sweep(c.current, now, c.ttl)
		sweep(c.forecast, now, c.ttl)
	}
	set()
}

func sweep[T any](m map[string]entry[T], now time.Time, ttl time.Duration) {
	for key, e := range m {
		if now.Sub(e.fetchedAt) >= ttl {
			delete(m, key)
		}
	}
}

// ABOUTME: In-memory cache with TTL-based expiration for computed reports
// ABOUTME: Thread-safe sync.Map store with singleflight coalescing of concurrent misses

package cache

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	data      V
	expiresAt time.Time
}

// Cache memoises values by key for a fixed TTL. A zero TTL disables storage
// but still coalesces concurrent loads of the same key.
type Cache[V any] struct {
	store sync.Map
	ttl   time.Duration
	group singleflight.Group
	stop  chan struct{}
	once  sync.Once
}

// New creates a cache and starts its background sweep.
func New[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		ttl:  ttl,
		stop: make(chan struct{}),
	}
	go c.startCleanup(time.Minute)
	return c
}

// TTL returns the configured entry lifetime.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}

func (c *Cache[V]) Get(key string) (V, bool) {
	var zero V
	val, ok := c.store.Load(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return zero, false
	}

	e := val.(entry[V])
	if time.Now().After(e.expiresAt) {
		c.store.Delete(key)
		slog.Debug("Cache expired", "key", key)
		return zero, false
	}

	slog.Debug("Cache hit", "key", key)
	return e.data, true
}

func (c *Cache[V]) Set(key string, value V) {
	if c.ttl <= 0 {
		return
	}
	c.store.Store(key, entry[V]{
		data:      value,
		expiresAt: time.Now().Add(c.ttl),
	})
	slog.Debug("Cache set", "key", key, "ttl", c.ttl)
}

// Source reports where a GetOrLoad value came from.
type Source int

const (
	// Loaded means this caller ran the load function.
	Loaded Source = iota
	// Stored means the value was served from the cache.
	Stored
	// Shared means the value came from another caller's in-flight load and
	// was not read from the cache.
	Shared
)

func (s Source) String() string {
	switch s {
	case Stored:
		return "stored"
	case Shared:
		return "shared"
	default:
		return "loaded"
	}
}

// GetOrLoad returns the cached value for key, or calls load once for all
// concurrent callers asking for the same key and caches a successful result.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, Source, error) {
	if v, ok := c.Get(key); ok {
		return v, Stored, nil
	}

	ran := false
	res, err, _ := c.group.Do(key, func() (any, error) {
		ran = true
		v, err := load()
		if err != nil {
			return v, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, Loaded, err
	}
	if !ran {
		return res.(V), Shared, nil
	}
	return res.(V), Loaded, nil
}

func (c *Cache[V]) Clear(key string) {
	c.store.Delete(key)
}

// Len counts live and not yet swept entries.
func (c *Cache[V]) Len() int {
	n := 0
	c.store.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Close stops the background sweep. It is safe to call more than once.
func (c *Cache[V]) Close() {
	c.once.Do(func() { close(c.stop) })
}

func (c *Cache[V]) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.sweep(time.Now())
		}
	}
}

func (c *Cache[V]) sweep(now time.Time) {
	c.store.Range(func(key, val any) bool {
		if now.After(val.(entry[V]).expiresAt) {
			c.store.Delete(key)
		}
		return true
	})
}

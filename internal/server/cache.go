package server

import (
	"container/list"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/iwvelando/loan-analytics/pkg/constants"
	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "loan-analytics"

// Cache stores encoded API responses keyed by request.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// CacheKey derives a cache key from an endpoint name and the canonical
// encoding of its request.
func CacheKey(endpoint string, canonical []byte) string {
	return fmt.Sprintf("%s:%s:%016x", cacheKeyPrefix, endpoint, xxhash.Sum64(canonical))
}

type memoryEntry struct {
	key     string
	value   []byte
	expires time.Time
}

// MemoryCache is an in-process Cache with a shared ttl and a bounded number
// of entries. Entries are kept in write order, so with a single ttl the
// oldest entry is always the first to expire and the first to be evicted.
type MemoryCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	order      *list.List
	entries    map[string]*list.Element
	now        func() time.Time
}

// NewMemoryCache creates a MemoryCache. A ttl <= 0 keeps entries until they
// are evicted; maxEntries <= 0 uses constants.DefaultCacheMaxEntries.
func NewMemoryCache(ttl time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = constants.DefaultCacheMaxEntries
	}
	return &MemoryCache{
		ttl:        ttl,
		maxEntries: maxEntries,
		order:      list.New(),
		entries:    make(map[string]*list.Element),
		now:        time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	entry := elem.Value.(*memoryEntry)
	if c.expired(entry, c.now()) {
		c.remove(elem)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	var expires time.Time
	if c.ttl > 0 {
		expires = now.Add(c.ttl)
	}
	stored := append([]byte(nil), value...)

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.value = stored
		entry.expires = expires
		c.order.MoveToBack(elem)
	} else {
		c.entries[key] = c.order.PushBack(&memoryEntry{key: key, value: stored, expires: expires})
	}

	c.sweep(now)
	for c.order.Len() > c.maxEntries {
		c.remove(c.order.Front())
	}
	return nil
}

// Len returns the number of stored entries. Expired entries are dropped on
// the next Set, so Len may include entries that expired since then.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// sweep drops expired entries from the front of the write order.
func (c *MemoryCache) sweep(now time.Time) {
	for elem := c.order.Front(); elem != nil; elem = c.order.Front() {
		if !c.expired(elem.Value.(*memoryEntry), now) {
			return
		}
		c.remove(elem)
	}
}

func (c *MemoryCache) expired(entry *memoryEntry, now time.Time) bool {
	return !entry.expires.IsZero() && !now.Before(entry.expires)
}

func (c *MemoryCache) remove(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.entries, elem.Value.(*memoryEntry).key)
}

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache connects to the Redis server at addr.
func NewRedisCache(addr string, db int, ttl time.Duration) *RedisCache {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &RedisCache{client: rdb, ttl: ttl}
}

func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	ttl := r.ttl
	if ttl < 0 {
		ttl = 0
	}
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Ping checks that the Redis server is reachable.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// NewCache builds the cache selected by cfg, or nil when caching is disabled.
func NewCache(cfg *Config) Cache {
	if cfg == nil || cfg.Cache.Disabled {
		return nil
	}
	if cfg.Cache.RedisAddress != "" {
		return NewRedisCache(cfg.Cache.RedisAddress, cfg.Cache.RedisDB, cfg.CacheTTL())
	}
	return NewMemoryCache(cfg.CacheTTL(), cfg.Cache.MaxEntries)
}

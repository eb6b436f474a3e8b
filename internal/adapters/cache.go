package adapters

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheStats reports hit/miss/eviction counters for a CacheProvider (spec
// §4.5).
type CacheStats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int64
}

// CacheProvider memoizes parsed ASTs keyed by a hash of their source text
// (spec §4.5). Distributed cache protocol internals are out of scope
// (spec §1 Non-goals) — both implementations here are thin adapters over
// an already-built client/map.
type CacheProvider interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Evict(ctx context.Context, key string) error
	Clear(ctx context.Context) error
	Stats() CacheStats
}

// MemoryCache is an in-process CacheProvider. No third-party library in
// the retrieval pack offers a plain TTL map/LRU as a direct dependency
// (see DESIGN.md), so this is built on stdlib sync + time.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryCacheEntry
	stats   CacheStats
}

type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache builds an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memoryCacheEntry{}}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || (!e.expiresAt.IsZero() && time.Now().After(e.expiresAt)) {
		if ok {
			delete(c.entries, key)
			c.stats.Evictions++
		}
		c.stats.Misses++
		return nil, false, nil
	}
	c.stats.Hits++
	return e.value, true, nil
}

func (c *MemoryCache) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	c.entries[key] = memoryCacheEntry{value: value, expiresAt: expiresAt}
	c.stats.Size = int64(len(c.entries))
	return nil
}

func (c *MemoryCache) Evict(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.stats.Evictions++
		c.stats.Size = int64(len(c.entries))
	}
	return nil
}

func (c *MemoryCache) Clear(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]memoryCacheEntry{}
	c.stats.Size = 0
	return nil
}

func (c *MemoryCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// RedisCache is a CacheProvider backed by a Redis server, used when
// parsed-AST memoization needs to be shared across engine instances
// (spec §4.5). It only exercises the client's thin command surface; the
// Redis wire protocol itself is out of scope (spec §1 Non-goals).
type RedisCache struct {
	client *redis.Client
	mu     sync.Mutex
	stats  CacheStats
}

// NewRedisCache wraps an already-configured *redis.Client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := c.client.Get(ctx, key).Bytes()
	c.mu.Lock()
	defer c.mu.Unlock()
	if err == redis.Nil {
		c.stats.Misses++
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	c.stats.Hits++
	return v, true, nil
}

func (c *RedisCache) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisCache) Evict(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return err
	}
	c.mu.Lock()
	c.stats.Evictions++
	c.mu.Unlock()
	return nil
}

func (c *RedisCache) Clear(ctx context.Context) error {
	return c.client.FlushDB(ctx).Err()
}

func (c *RedisCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

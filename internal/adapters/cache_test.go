package adapters

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCachePutGet(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss on empty cache")
	}
	if err := c.Put(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	v, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("Get(k) = %q, %v, %v", v, ok, err)
	}

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Size != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	if err := c.Put(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatalf("expected expired entry to be evicted on read")
	}
	if c.Stats().Evictions != 1 {
		t.Errorf("expected one eviction, got %+v", c.Stats())
	}
}

func TestMemoryCacheEvictAndClear(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	_ = c.Put(ctx, "a", []byte("1"), 0)
	_ = c.Put(ctx, "b", []byte("2"), 0)

	if err := c.Evict(ctx, "a"); err != nil {
		t.Fatalf("Evict() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Fatalf("expected evicted key to be gone")
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if c.Stats().Size != 0 {
		t.Errorf("expected size 0 after Clear, got %+v", c.Stats())
	}
}

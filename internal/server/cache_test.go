package server

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/iwvelando/loan-analytics/pkg/constants"
)

func TestCacheKey(t *testing.T) {
	a := CacheKey("schedule", []byte(`{"principal":100000}`))
	b := CacheKey("schedule", []byte(`{"principal":100000}`))
	c := CacheKey("schedule", []byte(`{"principal":100001}`))
	d := CacheKey("compare", []byte(`{"principal":100000}`))

	if a != b {
		t.Fatalf("expected identical keys, got %s and %s", a, b)
	}
	if a == c {
		t.Fatal("expected different payloads to produce different keys")
	}
	if a == d {
		t.Fatal("expected different endpoints to produce different keys")
	}
	if !strings.HasPrefix(a, "loan-analytics:schedule:") {
		t.Fatalf("unexpected key format: %s", a)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

	cache := NewMemoryCache(time.Minute, 0)
	cache.now = func() time.Time { return now }

	if _, ok, err := cache.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := cache.Set(ctx, "key", []byte("value")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok, err := cache.Get(ctx, "key")
	if err != nil || !ok || string(got) != "value" {
		t.Fatalf("expected hit with value, got %q ok=%v err=%v", got, ok, err)
	}

	now = now.Add(time.Minute)
	if _, ok, _ := cache.Get(ctx, "key"); ok {
		t.Fatal("expected entry to expire after ttl")
	}
	if cache.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, %d remain", cache.Len())
	}
}

func TestMemoryCacheNoTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

	cache := NewMemoryCache(0, 0)
	cache.now = func() time.Time { return now }

	value := []byte("value")
	if err := cache.Set(ctx, "key", value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	value[0] = 'X'

	now = now.Add(24 * 365 * time.Hour)
	got, ok, _ := cache.Get(ctx, "key")
	if !ok {
		t.Fatal("expected entry without ttl to persist")
	}
	if string(got) != "value" {
		t.Fatalf("expected stored copy to be unaffected by caller mutation, got %q", got)
	}
}

func TestMemoryCacheSweepsExpiredOnSet(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

	cache := NewMemoryCache(time.Millisecond, 20000)
	cache.now = func() time.Time { return now }

	for i := 0; i < 10000; i++ {
		if err := cache.Set(ctx, fmt.Sprintf("key-%d", i), []byte("value")); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	if cache.Len() != 10000 {
		t.Fatalf("expected 10000 live entries, got %d", cache.Len())
	}

	now = now.Add(10 * time.Millisecond)
	if err := cache.Set(ctx, "fresh", []byte("value")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cache.Len() != 1 {
		t.Fatalf("expected expired entries to be swept, %d remain", cache.Len())
	}
	if _, ok, _ := cache.Get(ctx, "fresh"); !ok {
		t.Fatal("expected the fresh entry to survive the sweep")
	}
}

func TestMemoryCacheSweepKeepsUnexpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

	cache := NewMemoryCache(time.Minute, 0)
	cache.now = func() time.Time { return now }

	_ = cache.Set(ctx, "old", []byte("1"))
	now = now.Add(30 * time.Second)
	_ = cache.Set(ctx, "newer", []byte("2"))
	now = now.Add(40 * time.Second)
	_ = cache.Set(ctx, "newest", []byte("3"))

	if cache.Len() != 2 {
		t.Fatalf("expected only the oldest entry to be swept, got %d entries", cache.Len())
	}
	if _, ok, _ := cache.Get(ctx, "old"); ok {
		t.Fatal("expected old entry to be gone")
	}
	if _, ok, _ := cache.Get(ctx, "newer"); !ok {
		t.Fatal("expected newer entry to remain")
	}
}

func TestMemoryCacheEvictsOldestOverCapacity(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0, 3)

	for _, key := range []string{"a", "b", "c"} {
		_ = cache.Set(ctx, key, []byte(key))
	}
	// Rewriting "a" makes "b" the oldest.
	_ = cache.Set(ctx, "a", []byte("A"))
	_ = cache.Set(ctx, "d", []byte("d"))

	if cache.Len() != 3 {
		t.Fatalf("expected cache capped at 3 entries, got %d", cache.Len())
	}
	if _, ok, _ := cache.Get(ctx, "b"); ok {
		t.Fatal("expected oldest entry to be evicted")
	}
	for key, want := range map[string]string{"a": "A", "c": "c", "d": "d"} {
		got, ok, _ := cache.Get(ctx, key)
		if !ok || string(got) != want {
			t.Fatalf("Get(%q) = %q, %v; want %q", key, got, ok, want)
		}
	}
}

func TestMemoryCacheDefaultCapacity(t *testing.T) {
	cache := NewMemoryCache(0, -1)
	if cache.maxEntries != constants.DefaultCacheMaxEntries {
		t.Fatalf("expected default capacity %d, got %d", constants.DefaultCacheMaxEntries, cache.maxEntries)
	}
}

func TestNewCache(t *testing.T) {
	if NewCache(nil) != nil {
		t.Fatal("expected nil cache for nil config")
	}

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if _, ok := NewCache(cfg).(*MemoryCache); !ok {
		t.Fatal("expected memory cache by default")
	}

	cfg.Cache.RedisAddress = "localhost:6379"
	redisCache, ok := NewCache(cfg).(*RedisCache)
	if !ok {
		t.Fatal("expected redis cache when an address is configured")
	}
	_ = redisCache.Close()

	cfg.Cache.Disabled = true
	if NewCache(cfg) != nil {
		t.Fatal("expected nil cache when disabled")
	}
}

func TestRedisCacheGetSet(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cache := NewRedisCache(mr.Addr(), 0, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	if err := cache.Ping(ctx); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}

	got, ok, err := cache.Get(ctx, "missing")
	if err != nil || ok || got != nil {
		t.Fatalf("expected miss without error, got %q ok=%v err=%v", got, ok, err)
	}

	if err := cache.Set(ctx, "key", []byte("value")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, ok, err = cache.Get(ctx, "key")
	if err != nil || !ok || string(got) != "value" {
		t.Fatalf("expected hit with value, got %q ok=%v err=%v", got, ok, err)
	}
	if ttl := mr.TTL("key"); ttl != time.Minute {
		t.Fatalf("expected ttl of 1m, got %s", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok, err := cache.Get(ctx, "key"); ok || err != nil {
		t.Fatalf("expected miss after expiry, got ok=%v err=%v", ok, err)
	}
}

func TestRedisCacheTTL(t *testing.T) {
	tests := []struct {
		name string
		ttl  time.Duration
		want time.Duration
	}{
		{"Positive ttl", 30 * time.Second, 30 * time.Second},
		{"Zero ttl keeps forever", 0, 0},
		{"Negative ttl clamped", -time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mr := miniredis.RunT(t)

			cache := NewRedisCache(mr.Addr(), 0, tt.ttl)
			t.Cleanup(func() { _ = cache.Close() })

			if err := cache.Set(ctx, "key", []byte("value")); err != nil {
				t.Fatalf("Set() error = %v", err)
			}
			if got := mr.TTL("key"); got != tt.want {
				t.Fatalf("expected ttl %s, got %s", tt.want, got)
			}
			if _, ok, _ := cache.Get(ctx, "key"); !ok {
				t.Fatal("expected stored value to be readable")
			}
		})
	}
}

func TestRedisCacheSelectsDB(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cache := NewRedisCache(mr.Addr(), 3, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	if err := cache.Set(ctx, "key", []byte("value")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, err := mr.DB(3).Get("key"); err != nil || got != "value" {
		t.Fatalf("expected value in db 3, got %q err=%v", got, err)
	}
	if mr.Exists("key") {
		t.Fatal("expected default db to stay empty")
	}
}

func TestRedisCacheServerDown(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	mr := miniredis.RunT(t)
	cache := NewRedisCache(mr.Addr(), 0, time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	mr.Close()

	if _, ok, err := cache.Get(ctx, "key"); err == nil || ok {
		t.Fatalf("expected error from unreachable server, got ok=%v err=%v", ok, err)
	}
	if err := cache.Set(ctx, "key", []byte("value")); err == nil {
		t.Fatal("expected Set to fail against unreachable server")
	}
	if err := cache.Ping(ctx); err == nil {
		t.Fatal("expected Ping to fail against unreachable server")
	}
}

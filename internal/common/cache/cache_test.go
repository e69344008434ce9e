package cache_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"codehunt/internal/common/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rc, err := cache.NewRedisCacheWithClient(client)
	if err != nil {
		t.Fatalf("unexpected redis cache error: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func implementations(t *testing.T) map[string]cache.Cache {
	rc, _ := newRedisCache(t)
	return map[string]cache.Cache{
		"memory": cache.NewMemoryCache(16),
		"redis":  rc,
	}
}

func TestCacheBasicOps(t *testing.T) {
	ctx := context.Background()
	for name, c := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			if err := c.Ping(ctx); err != nil {
				t.Fatalf("unexpected ping error: %v", err)
			}
			got, err := c.Get(ctx, "missing")
			if err != nil || got != "" {
				t.Fatalf("expected empty miss, got %q, %v", got, err)
			}
			if err := c.Set(ctx, "k", "v", 0); err != nil {
				t.Fatalf("unexpected set error: %v", err)
			}
			if got, _ := c.Get(ctx, "k"); got != "v" {
				t.Fatalf("expected v, got %q", got)
			}
			ok, err := c.SetNX(ctx, "k", "other", 0)
			if err != nil || ok {
				t.Fatalf("expected SetNX to refuse existing key, got %v, %v", ok, err)
			}
			if n, _ := c.Exists(ctx, "k", "missing"); n != 1 {
				t.Fatalf("expected 1 existing key, got %d", n)
			}
			if err := c.Del(ctx, "k"); err != nil {
				t.Fatalf("unexpected del error: %v", err)
			}
			if n, _ := c.Exists(ctx, "k"); n != 0 {
				t.Fatalf("expected key to be deleted")
			}
		})
	}
}

func TestCacheIncrBy(t *testing.T) {
	ctx := context.Background()
	for name, c := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			if n, err := c.IncrBy(ctx, "views", 3); err != nil || n != 3 {
				t.Fatalf("unexpected first incr: %d, %v", n, err)
			}
			if n, err := c.IncrBy(ctx, "views", 4); err != nil || n != 7 {
				t.Fatalf("unexpected second incr: %d, %v", n, err)
			}
			if got, _ := c.Get(ctx, "views"); got != "7" {
				t.Fatalf("expected stored counter 7, got %q", got)
			}
		})
	}
}

func TestCacheLocking(t *testing.T) {
	ctx := context.Background()
	for name, c := range implementations(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := c.TryLock(ctx, "bucket", time.Second)
			if err != nil || !ok {
				t.Fatalf("expected first lock, got %v, %v", ok, err)
			}
			if ok, _ := c.TryLock(ctx, "bucket", time.Second); ok {
				t.Fatalf("expected second lock to fail")
			}
			if err := c.Unlock(ctx, "bucket"); err != nil {
				t.Fatalf("unexpected unlock error: %v", err)
			}
			if ok, _ := c.TryLock(ctx, "bucket", time.Second); !ok {
				t.Fatalf("expected lock after unlock")
			}
		})
	}
}

func TestWithLockSerializes(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(16)

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := cache.WithLock(ctx, c, "critical", time.Second, func() error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			if err != nil {
				t.Errorf("unexpected lock error: %v", err)
			}
		}()
	}
	wg.Wait()
	if maxSeen != 1 {
		t.Fatalf("expected exclusive access, saw %d concurrent holders", maxSeen)
	}
}

func TestWithLockHonorsContext(t *testing.T) {
	c := cache.NewMemoryCache(16)
	if ok, _ := c.TryLock(context.Background(), "held", time.Minute); !ok {
		t.Fatalf("expected lock")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := cache.WithLock(ctx, c, "held", time.Second, func() error { return nil })
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)
	c := cache.NewMemoryCache(4)
	c.SetClock(func() time.Time { return now })

	_ = c.Set(ctx, "token", "2", time.Minute)
	if got, _ := c.Get(ctx, "token"); got != "2" {
		t.Fatalf("expected live token, got %q", got)
	}
	now = now.Add(time.Minute)
	if got, _ := c.Get(ctx, "token"); got != "" {
		t.Fatalf("expected token to expire, got %q", got)
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(2)
	_ = c.Set(ctx, "a", "1", time.Hour)
	_ = c.Set(ctx, "b", "2", time.Hour)
	_, _ = c.Get(ctx, "a")
	_ = c.Set(ctx, "c", "3", time.Hour)

	if got, _ := c.Get(ctx, "b"); got != "" {
		t.Fatalf("expected oldest entry to be evicted")
	}
	if got, _ := c.Get(ctx, "a"); got != "1" {
		t.Fatalf("expected recent entry to remain")
	}
}

func TestMemoryCacheKeepsKeysWithoutTTL(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache(2)
	_ = c.Set(ctx, "bucket", "0|0", 0)
	if _, err := c.IncrBy(ctx, "views", 3); err != nil {
		t.Fatalf("unexpected incr error: %v", err)
	}
	for i := 0; i < 10; i++ {
		_ = c.Set(ctx, fmt.Sprintf("token:%d", i), "1", time.Hour)
	}

	if got, _ := c.Get(ctx, "bucket"); got != "0|0" {
		t.Fatalf("expected bucket to survive eviction, got %q", got)
	}
	if got, _ := c.Get(ctx, "views"); got != "3" {
		t.Fatalf("expected counter to survive eviction, got %q", got)
	}
	if n, _ := c.Exists(ctx, "token:0", "token:8", "token:9"); n != 2 {
		t.Fatalf("expected only the newest tokens to remain, got %d", n)
	}

	// Dropping the TTL moves a key out of the LRU.
	_ = c.Set(ctx, "token:9", "kept", 0)
	for i := 10; i < 14; i++ {
		_ = c.Set(ctx, fmt.Sprintf("token:%d", i), "1", time.Hour)
	}
	if got, _ := c.Get(ctx, "token:9"); got != "kept" {
		t.Fatalf("expected persistent token to remain, got %q", got)
	}
}

func TestRedisCacheExpiry(t *testing.T) {
	ctx := context.Background()
	rc, mr := newRedisCache(t)
	_ = rc.Set(ctx, "token", "2", time.Minute)
	mr.FastForward(2 * time.Minute)
	if got, _ := rc.Get(ctx, "token"); got != "" {
		t.Fatalf("expected token to expire, got %q", got)
	}
}

func TestNewSelectsDriver(t *testing.T) {
	c, err := cache.New(cache.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.(*cache.MemoryCache); !ok {
		t.Fatalf("expected memory cache, got %T", c)
	}

	mr := miniredis.RunT(t)
	c, err = cache.New(cache.Config{Driver: cache.DriverRedis, Redis: cache.RedisConfig{Addr: mr.Addr()}})
	if err != nil {
		t.Fatalf("unexpected redis error: %v", err)
	}
	defer c.Close()
	if _, ok := c.(*cache.RedisCache); !ok {
		t.Fatalf("expected redis cache, got %T", c)
	}

	if _, err := cache.New(cache.Config{Driver: "memcached"}); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestJitterTTL(t *testing.T) {
	ttl := 10 * time.Minute
	for i := 0; i < 20; i++ {
		got := cache.JitterTTL(ttl)
		if got > ttl || got < ttl-ttl/10 {
			t.Fatalf("jitter out of range: %v", got)
		}
	}
	if cache.JitterTTL(0) != 0 {
		t.Fatalf("expected zero ttl to be kept")
	}
}

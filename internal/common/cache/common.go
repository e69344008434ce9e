package cache

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"

	defaultMemorySize = 4096
)

// Config selects and configures a cache implementation.
type Config struct {
	Driver     string      `yaml:"driver"`
	MemorySize int         `yaml:"memorySize"`
	Redis      RedisConfig `yaml:"redis"`
}

// New builds the cache named by cfg.Driver. An empty driver means memory.
func New(cfg Config) (Cache, error) {
	switch cfg.Driver {
	case "", DriverMemory:
		size := cfg.MemorySize
		if size <= 0 {
			size = defaultMemorySize
		}
		return NewMemoryCache(size), nil
	case DriverRedis:
		redisCfg := DefaultRedisConfig()
		redisCfg.Addr = cfg.Redis.Addr
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		if cfg.Redis.PoolSize > 0 {
			redisCfg.PoolSize = cfg.Redis.PoolSize
		}
		return NewRedisCacheWithConfig(redisCfg)
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// WithLock runs fn while holding key. It retries until ctx is done.
func WithLock(ctx context.Context, c LockOps, key string, ttl time.Duration, fn func() error) error {
	const retryDelay = 5 * time.Millisecond
	for {
		ok, err := c.TryLock(ctx, key, ttl)
		if err != nil {
			return err
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryDelay):
		}
	}
	defer func() { _ = c.Unlock(context.WithoutCancel(ctx), key) }()
	return fn()
}

// JitterTTL shortens ttl by up to 10% so keys minted together do not expire together.
func JitterTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return ttl
	}
	maxJitter := int64(ttl / 10)
	if maxJitter <= 0 {
		return ttl
	}
	n, err := rand.Int(rand.Reader, big.NewInt(maxJitter+1))
	if err != nil {
		return ttl
	}
	return ttl - time.Duration(n.Int64())
}

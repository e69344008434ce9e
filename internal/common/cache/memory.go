package cache

import (
	"container/list"
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
	// elem is nil for keys without a TTL; those never take part in eviction.
	elem *list.Element
}

// MemoryCache is an in-process cache with per-key TTL. Keys with a TTL form
// an LRU bounded by maxSize. Keys without one are kept until deleted.
type MemoryCache struct {
	mu      sync.Mutex
	items   map[string]*memoryEntry
	order   *list.List
	maxSize int
	now     func() time.Time
}

// NewMemoryCache creates a cache holding at most maxSize expiring keys.
func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize <= 0 {
		maxSize = defaultMemorySize
	}
	return &MemoryCache{
		items:   make(map[string]*memoryEntry),
		order:   list.New(),
		maxSize: maxSize,
		now:     time.Now,
	}
}

// SetClock replaces the time source used for expiry.
func (c *MemoryCache) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *MemoryCache) Ping(ctx context.Context) error { return nil }

func (c *MemoryCache) Close() error { return nil }

func (c *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lookup(key)
	if !ok {
		return "", nil
	}
	return entry.value, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(key, value, ttl)
	return nil
}

func (c *MemoryCache) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.lookup(key); ok {
		return false, nil
	}
	c.store(key, value, ttl)
	return true, nil
}

func (c *MemoryCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range keys {
		if entry, ok := c.items[key]; ok {
			c.remove(entry)
		}
	}
	return nil
}

func (c *MemoryCache) Exists(ctx context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for _, key := range keys {
		if _, ok := c.lookup(key); ok {
			n++
		}
	}
	return n, nil
}

// IncrBy keeps the key's TTL, like Redis does.
func (c *MemoryCache) IncrBy(ctx context.Context, key string, value int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var current int64
	if entry, ok := c.lookup(key); ok {
		n, err := strconv.ParseInt(entry.value, 10, 64)
		if err != nil {
			return 0, err
		}
		current = n
		entry.value = strconv.FormatInt(current+value, 10)
		return current + value, nil
	}
	c.store(key, strconv.FormatInt(value, 10), 0)
	return value, nil
}

func (c *MemoryCache) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.SetNX(ctx, lockKey(key), "1", ttl)
}

func (c *MemoryCache) Unlock(ctx context.Context, key string) error {
	return c.Del(ctx, lockKey(key))
}

// lookup returns a live entry and refreshes its recency. Caller holds mu.
func (c *MemoryCache) lookup(key string) (*memoryEntry, bool) {
	entry, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.remove(entry)
		return nil, false
	}
	if entry.elem != nil {
		c.order.MoveToFront(entry.elem)
	}
	return entry, true
}

func (c *MemoryCache) store(key, value string, ttl time.Duration) {
	entry, ok := c.items[key]
	if !ok {
		entry = &memoryEntry{key: key}
		c.items[key] = entry
	}
	entry.value = value
	entry.expiresAt = time.Time{}

	if ttl <= 0 {
		if entry.elem != nil {
			c.order.Remove(entry.elem)
			entry.elem = nil
		}
		return
	}

	entry.expiresAt = c.now().Add(ttl)
	if entry.elem != nil {
		c.order.MoveToFront(entry.elem)
		return
	}
	entry.elem = c.order.PushFront(entry)
	if c.order.Len() > c.maxSize {
		c.evictOldest()
	}
}

func (c *MemoryCache) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.remove(elem.Value.(*memoryEntry))
}

func (c *MemoryCache) remove(entry *memoryEntry) {
	delete(c.items, entry.key)
	if entry.elem != nil {
		c.order.Remove(entry.elem)
		entry.elem = nil
	}
}

package utils

import (
	"context"
	"os"
	"strconv"
	"sync"
	"time"
)

const DefaultHomeCacheTTL = 20 * time.Second

// HomeCacheTTL is the fixed staleness window for the cached home page,
// overridable per deployment through HOME_CACHE_TTL_SECONDS.
func HomeCacheTTL() time.Duration {
	if v, err := strconv.Atoi(os.Getenv("HOME_CACHE_TTL_SECONDS")); err == nil && v > 0 {
		return time.Duration(v) * time.Second
	}
	return DefaultHomeCacheTTL
}

// PageCache memoizes fully rendered page bytes for a bounded time window.
// Within the window readers get the identical bytes back even if the
// underlying data has changed, staleness up to the TTL is part of the
// contract. Clear drops an entry immediately so the next read recomputes.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Clear(ctx context.Context, key string)
}

type memoryPageEntry struct {
	value    []byte
	expireAt time.Time
}

// MemoryPageCache is the in-process PageCache. The clock is injectable so
// expiry is testable without sleeping.
type MemoryPageCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]memoryPageEntry
}

func NewMemoryPageCache(clock func() time.Time) *MemoryPageCache {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryPageCache{
		now:     clock,
		entries: map[string]memoryPageEntry{},
	}
}

func (c *MemoryPageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(entry.expireAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryPageCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = memoryPageEntry{
		value:    value,
		expireAt: c.now().Add(ttl),
	}
}

func (c *MemoryPageCache) Clear(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

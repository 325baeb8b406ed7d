package utils

import (
	"context"
	"os"
	"time"

	"github.com/go-redis/redis/v8"

	Logger "github.com/rnr-capital/microblog-backend/utils/log"
)

// RedisPageCache is the PageCache used in deployments with more than one
// serving process, so that all of them share the same cached home page.
// Expiry is delegated to redis' native key TTL. Cache reads are best
// effort, a redis failure degrades to a miss instead of failing the
// request.
type RedisPageCache struct {
	client *redis.Client
}

func NewRedisPageCache(client *redis.Client) *RedisPageCache {
	return &RedisPageCache{client: client}
}

// GetRedisPageCache builds a RedisPageCache from REDIS_ADDR and
// REDIS_PASS, and verifies connectivity before returning.
func GetRedisPageCache() (*RedisPageCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASS"),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return NewRedisPageCache(client), nil
}

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		Logger.LogV2.Errorf("fail to read page cache key %s: %v", key, err)
		return nil, false
	}
	return value, true
}

func (c *RedisPageCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		Logger.LogV2.Errorf("fail to write page cache key %s: %v", key, err)
	}
}

func (c *RedisPageCache) Clear(ctx context.Context, key string) {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		Logger.LogV2.Errorf("fail to clear page cache key %s: %v", key, err)
	}
}

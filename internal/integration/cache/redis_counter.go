package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounter counts hits per key in fixed windows shared by every API instance.
type RedisCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisCounter creates a counter whose keys live under prefix.
func NewRedisCounter(client *redis.Client, prefix string) *RedisCounter {
	return &RedisCounter{
		client: client,
		prefix: prefix,
	}
}

// Hit records one hit for key and returns the count within the current window.
// The window starts with the first hit.
func (c *RedisCounter) Hit(ctx context.Context, key string, window time.Duration) (int, error) {
	fullKey := c.prefix + key

	count, err := c.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := c.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return 0, err
		}
	}
	return int(count), nil
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airservice/config"
	"github.com/redis/go-redis/v9"
)

// RedisCache holds low-contention reference lists and the notification
// sweep lock. Seat availability is never cached.
type RedisCache struct {
	client       *redis.Client
	referenceTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, referenceTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		referenceTTL: referenceTTL,
	}
}

// GetList decodes the cached list stored under name into dst. It reports
// false on a cache miss.
func (c *RedisCache) GetList(ctx context.Context, name string, dst any) (bool, error) {
	data, err := c.client.Get(ctx, listKey(name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) SetList(ctx context.Context, name string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listKey(name), payload, c.referenceTTL).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, len(names))
	for i, n := range names {
		keys[i] = listKey(n)
	}
	return c.client.Del(ctx, keys...).Err()
}

// AcquireLock takes a named lock for ttl. The returned token must be passed
// to ReleaseLock.
func (c *RedisCache) AcquireLock(ctx context.Context, name, token string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, lockKey(name), token, ttl).Result()
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// ReleaseLock drops the lock only if it is still held with token.
func (c *RedisCache) ReleaseLock(ctx context.Context, name, token string) error {
	return releaseScript.Run(ctx, c.client, []string{lockKey(name)}, token).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func listKey(name string) string {
	return fmt.Sprintf("cache:list:%s", name)
}

func lockKey(name string) string {
	return fmt.Sprintf("lock:%s", name)
}

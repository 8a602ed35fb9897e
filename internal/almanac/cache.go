package almanac

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache memoizes another Source's record pairs in Redis, one hash per
// date. Redis failures are logged and fall through to the wrapped source.
type RedisCache struct {
	client *redis.Client
	source Source
	ttl    time.Duration
	prefix string
	logger *slog.Logger
}

// NewRedisCache wraps source. A zero ttl keeps entries until evicted.
func NewRedisCache(client *redis.Client, source Source, ttl time.Duration, logger *slog.Logger) *RedisCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisCache{
		client: client,
		source: source,
		ttl:    ttl,
		prefix: "almanac:window:",
		logger: logger,
	}
}

// Window implements Source.
func (c *RedisCache) Window(ctx context.Context, date time.Time) (string, string, error) {
	key := c.prefix + midnight(date).Format(time.DateOnly)

	vals, err := c.client.HMGet(ctx, key, "previous", "next").Result()
	if err != nil {
		c.logger.Warn("almanac cache read failed", slog.String("key", key), slog.Any("error", err))
	} else if previous, ok := vals[0].(string); ok {
		if next, ok := vals[1].(string); ok {
			return previous, next, nil
		}
	}

	previous, next, err := c.source.Window(ctx, date)
	if err != nil {
		return "", "", err
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, "previous", previous, "next", next)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("almanac cache write failed", slog.String("key", key), slog.Any("error", err))
	}

	return previous, next, nil
}

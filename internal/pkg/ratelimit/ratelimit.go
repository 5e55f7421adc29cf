package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter answers whether an action keyed by id is allowed right now.
type Limiter interface {
	Allow(ctx context.Context, id string) (bool, error)
}

// RedisLimiter is a fixed-window counter: INCR the key, set EXPIRE on first
// hit, deny once the count passes the limit.
type RedisLimiter struct {
	rdb      *redis.Client
	resource string
	limit    int64
	window   time.Duration
}

func NewRedis(rdb *redis.Client, resource string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, resource: resource, limit: int64(limit), window: window}
}

func (l *RedisLimiter) Allow(ctx context.Context, id string) (bool, error) {
	if l.rdb == nil {
		return false, fmt.Errorf("redis client is nil")
	}

	key := fmt.Sprintf("rl:%s:%s", l.resource, id)

	cnt, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		l.rdb.Expire(ctx, key, l.window)
	}
	return cnt <= l.limit, nil
}

// Unlimited never denies. Used when no redis address is configured.
type Unlimited struct{}

func (Unlimited) Allow(context.Context, string) (bool, error) {
	return true, nil
}

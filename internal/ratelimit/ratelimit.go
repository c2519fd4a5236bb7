// Package ratelimit throttles abuse-prone operations such as sending
// verification codes.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Rule allows Limit events per Window.
type Rule struct {
	Limit  int
	Window time.Duration
}

// Limiter decides whether an event for key is allowed under rule. When it
// is not, retryAfter says how long until the window resets.
type Limiter interface {
	Allow(ctx context.Context, key string, rule Rule) (allowed bool, retryAfter time.Duration, err error)
}

// RedisLimiter is a fixed-window counter kept in Redis, shared by all
// server instances.
type RedisLimiter struct {
	redis     *redis.Client
	keyPrefix string
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{
		redis:     client,
		keyPrefix: "tabsplit:rate_limit:",
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string, rule Rule) (bool, time.Duration, error) {
	rKey := l.keyPrefix + key

	// NX keeps the first expiry so the window does not slide.
	pipe := l.redis.Pipeline()
	incr := pipe.Incr(ctx, rKey)
	pipe.ExpireNX(ctx, rKey, rule.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to update rate limit counter: %w", err)
	}

	if incr.Val() <= int64(rule.Limit) {
		return true, 0, nil
	}

	ttl, err := l.redis.TTL(ctx, rKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to read rate limit ttl: %w", err)
	}
	if ttl < 0 {
		ttl = rule.Window
	}
	return false, ttl, nil
}

// Ping checks the Redis connection.
func (l *RedisLimiter) Ping(ctx context.Context) error {
	return l.redis.Ping(ctx).Err()
}

// Noop allows everything. It is used when Redis is not configured.
type Noop struct{}

func (Noop) Allow(context.Context, string, Rule) (bool, time.Duration, error) {
	return true, 0, nil
}

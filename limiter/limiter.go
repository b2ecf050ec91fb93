// Package limiter rate-limits sensitive operations with fixed-window
// Redis counters keyed by request identity.
package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/redis/go-redis/v9"
)

// TextCodeTooManyRequests identifies rate-limited calls.
const TextCodeTooManyRequests = "too_many_requests"

// Policy is a fixed-window budget: at most Limit calls per Window.
type Policy struct {
	Limit  int
	Window time.Duration
}

// Limiter enforces per-key call budgets using Redis counters.
type Limiter struct {
	redis  redis.UniversalClient
	prefix string
	policy Policy
}

// New creates a limiter with the given policy. Keys are namespaced under
// the prefix so independent limiters can share one Redis.
func New(redisClient redis.UniversalClient, prefix string, policy Policy) *Limiter {
	return &Limiter{
		redis:  redisClient,
		prefix: prefix,
		policy: policy,
	}
}

// Check records a call for the key and fails once the window budget is
// exhausted. The failure carries the remaining window as "retry-after"
// seconds metadata.
func (l *Limiter) Check(ctx context.Context, key string) error {
	counterKey := l.prefix + ":" + key

	count, err := l.redis.Incr(ctx, counterKey).Result()
	if err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "rate limiter backend unavailable")
	}

	// Fixed-window semantics: the TTL starts with the first hit.
	if count == 1 {
		if err := l.redis.Expire(ctx, counterKey, l.policy.Window).Err(); err != nil {
			return errors.Wrap(err, errors.CategoryInternal, "rate limiter backend unavailable")
		}
	}

	if count > int64(l.policy.Limit) {
		retryAfter := l.policy.Window
		if ttl, err := l.redis.TTL(ctx, counterKey).Result(); err == nil && ttl > 0 {
			retryAfter = ttl
		}
		return tooManyRequests(retryAfter)
	}

	return nil
}

// Reset clears the counter for the key.
func (l *Limiter) Reset(ctx context.Context, key string) error {
	if err := l.redis.Del(ctx, l.prefix+":"+key).Err(); err != nil {
		return errors.Wrap(err, errors.CategoryInternal, "rate limiter backend unavailable")
	}
	return nil
}

func tooManyRequests(retryAfter time.Duration) error {
	seconds := int(retryAfter.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return errors.New(fmt.Sprintf("too many requests, retry after %d seconds", seconds), errors.CategoryRateLimit).
		WithTextCode(TextCodeTooManyRequests).
		WithMetadata(map[string]any{"retry-after": seconds})
}

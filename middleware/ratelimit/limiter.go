package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of a single rate limit check.
type Decision struct {
	Allowed   bool
	Remaining int
	Limit     int
	ResetAt   time.Time
}

// Allower decides whether one more request under key fits the limit.
type Allower interface {
	Allow(ctx context.Context, key string, limit Limit) (Decision, error)
}

// slidingWindow keeps one sorted set per key, scored by request time in ms.
// Returns {allowed, remaining, reset_at_ms}.
var slidingWindow = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)
	local current = redis.call('ZCARD', key)

	if current < limit then
		local seq = redis.call('INCR', key .. ':seq')
		redis.call('ZADD', key, now, now .. '-' .. seq)
		redis.call('PEXPIRE', key, window)
		redis.call('PEXPIRE', key .. ':seq', window)
		return {1, limit - current - 1, now + window}
	end

	local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
	local reset_at = now + window
	if oldest and #oldest >= 2 then
		reset_at = tonumber(oldest[2]) + window
	end
	return {0, 0, reset_at}
`)

// RedisLimiter implements a sliding window limiter on Redis sorted sets.
type RedisLimiter struct {
	client    redis.Scripter
	keyPrefix string
}

var _ Allower = (*RedisLimiter)(nil)

// NewRedisLimiter creates a limiter using client for storage.
func NewRedisLimiter(client redis.Scripter, keyPrefix string) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Allow records the request if it fits into the window.
func (l *RedisLimiter) Allow(ctx context.Context, key string, limit Limit) (Decision, error) {
	now := time.Now().UnixMilli()

	res, err := slidingWindow.Run(ctx, l.client,
		[]string{l.keyPrefix + key},
		now, limit.Window.Milliseconds(), limit.Requests,
	).Int64Slice()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit script failed: %w", err)
	}
	if len(res) != 3 {
		return Decision{}, fmt.Errorf("unexpected rate limit reply length: %d", len(res))
	}

	return Decision{
		Allowed:   res[0] == 1,
		Remaining: int(res[1]),
		Limit:     limit.Requests,
		ResetAt:   time.UnixMilli(res[2]),
	}, nil
}

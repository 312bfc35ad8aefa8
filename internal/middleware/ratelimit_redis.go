package middleware

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/careerportal/internal/pkg/logger"
)

// rateLimitScript counts a hit and opens the window on the first one.
// Returns the hit count and the window's remaining milliseconds.
const rateLimitScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`

// RedisLimiterConfig tunes the shared limiter
type RedisLimiterConfig struct {
	// KeyPrefix namespaces counters so several deployments can share one Redis
	KeyPrefix string
	// Timeout bounds each round trip; slower answers count as Redis being down
	Timeout time.Duration
}

// RedisLimiter shares fixed-window counters across instances through Redis.
// While Redis is unreachable it counts in-process through its fallback.
type RedisLimiter struct {
	client   *redis.Client
	script   *redis.Script
	config   RedisLimiterConfig
	fallback Limiter
}

func NewRedisLimiter(client *redis.Client, config RedisLimiterConfig, fallback Limiter) *RedisLimiter {
	if client == nil {
		return nil
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "careerportal:ratelimit"
	}
	if config.Timeout <= 0 {
		config.Timeout = 250 * time.Millisecond
	}
	if fallback == nil {
		fallback = NewRateLimiter()
	}
	return &RedisLimiter{
		client:   client,
		script:   redis.NewScript(rateLimitScript),
		config:   config,
		fallback: fallback,
	}
}

func (l *RedisLimiter) key(key string) string {
	return l.config.KeyPrefix + ":" + key
}

func (l *RedisLimiter) Allow(key string, limit int, window time.Duration) bool {
	if l == nil || l.client == nil {
		return true
	}
	if key == "" || limit <= 0 || window <= 0 {
		return true
	}
	ttl := window.Milliseconds()
	if ttl <= 0 {
		ttl = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), l.config.Timeout)
	defer cancel()
	res, err := l.script.Run(ctx, l.client, []string{l.key(key)}, ttl).Int64Slice()
	if err != nil || len(res) != 2 {
		logger.Warn().Err(err).Str("key", key).Msg("Redis rate limiter unavailable, counting in-process")
		return l.fallback.Allow(key, limit, window)
	}

	// a key that lost its expiry would block the caller forever
	if res[1] < 0 {
		l.client.PExpire(ctx, l.key(key), window)
	}
	return res[0] <= int64(limit)
}

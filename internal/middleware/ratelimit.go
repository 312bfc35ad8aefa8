package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
)

// Limiter decides whether another request for key fits in the window
type Limiter interface {
	Allow(key string, limit int, window time.Duration) bool
}

// RateLimiter is a fixed-window in-process limiter.
// Expired buckets are swept at most once per window so idle clients do not accumulate.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*rateBucket
	now       func() time.Time
	nextSweep time.Time
}

type rateBucket struct {
	count     int
	windowEnd time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*rateBucket),
		now:     time.Now,
	}
}

func (r *RateLimiter) Allow(key string, limit int, window time.Duration) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.sweep(now, window)

	bucket, ok := r.buckets[key]
	if !ok || now.After(bucket.windowEnd) {
		r.buckets[key] = &rateBucket{count: 1, windowEnd: now.Add(window)}
		return true
	}
	if bucket.count >= limit {
		return false
	}
	bucket.count++
	return true
}

func (r *RateLimiter) sweep(now time.Time, window time.Duration) {
	if now.Before(r.nextSweep) {
		return
	}
	for key, bucket := range r.buckets {
		if now.After(bucket.windowEnd) {
			delete(r.buckets, key)
		}
	}
	r.nextSweep = now.Add(window)
}

// RateLimit throttles requests per client IP under the given key prefix
func RateLimit(limiter Limiter, prefix string, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || limit <= 0 {
			c.Next()
			return
		}
		if !limiter.Allow(prefix+":"+c.ClientIP(), limit, window) {
			HandleAPIError(c, apperrors.ErrTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

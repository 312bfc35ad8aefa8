package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/careerportal/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"unauthenticated", apperrors.ErrUnauthenticated, http.StatusUnauthorized, "Unauthorized"},
		{"expired", fmt.Errorf("verify: %w", apperrors.ErrTokenExpired), http.StatusUnauthorized, "Unauthorized"},
		{"forbidden", apperrors.ErrPermissionDenied, http.StatusForbidden, "Forbidden"},
		{"job missing", apperrors.ErrJobNotFound, http.StatusNotFound, "Job not found"},
		{"bad status", apperrors.ErrInvalidStatus, http.StatusBadRequest, "Invalid application status"},
		{"missing id", apperrors.ErrMissingID, http.StatusBadRequest, "Missing id"},
		{"throttled", apperrors.ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, "connection reset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message := statusFor(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestRateLimiterWindow(t *testing.T) {
	limiter := NewRateLimiter()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("k", 2, time.Minute))
	assert.True(t, limiter.Allow("k", 2, time.Minute))
	assert.False(t, limiter.Allow("k", 2, time.Minute))
	assert.True(t, limiter.Allow("other", 2, time.Minute))

	now = now.Add(2 * time.Minute)
	assert.True(t, limiter.Allow("k", 2, time.Minute))
}

func TestRateLimiterSweepsExpiredBuckets(t *testing.T) {
	limiter := NewRateLimiter()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	for _, ip := range []string{"10.0.0.1", "10.0.0.2", "10.0.0.3"} {
		assert.True(t, limiter.Allow("session:"+ip, 5, time.Minute))
	}
	assert.Len(t, limiter.buckets, 3)

	now = now.Add(2 * time.Minute)
	assert.True(t, limiter.Allow("session:10.0.0.4", 5, time.Minute))
	assert.Len(t, limiter.buckets, 1)
}

func TestRedisLimiterFallsBackWhenUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	limiter := NewRedisLimiter(client, RedisLimiterConfig{Timeout: 100 * time.Millisecond}, nil)
	assert.True(t, limiter.Allow("session:10.0.0.1", 1, time.Minute))
	assert.False(t, limiter.Allow("session:10.0.0.1", 1, time.Minute))
	assert.Equal(t, "careerportal:ratelimit:session:10.0.0.1", limiter.key("session:10.0.0.1"))
}

func TestRateLimitMiddleware(t *testing.T) {
	router := gin.New()
	router.POST("/auth/session", RateLimit(NewRateLimiter(), "session", 1, time.Minute), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/auth/session", nil))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/auth/session", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.JSONEq(t, `{"error":"Too many requests"}`, second.Body.String())
}

func TestNilRedisLimiterAllows(t *testing.T) {
	var limiter *RedisLimiter
	assert.Nil(t, NewRedisLimiter(nil, RedisLimiterConfig{}, nil))
	assert.True(t, limiter.Allow("k", 1, time.Minute))
}

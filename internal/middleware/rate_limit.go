package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	apierrors "github.com/strivetrack/strivetrack-api/internal/errors"
	"github.com/strivetrack/strivetrack-api/internal/logger"
	"github.com/strivetrack/strivetrack-api/internal/metrics"
	"go.uber.org/zap"
)

// rateWindow is the length of one fixed rate limit window.
const rateWindow = time.Minute

// Counter increments a key that expires after ttl and returns the new value
type Counter interface {
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RedisCounter is a Counter backed by Redis INCR and EXPIRE
type RedisCounter struct {
	client *redis.Client
}

// NewRedisCounter connects to addr and pings it once
func NewRedisCounter(ctx context.Context, addr string) (*RedisCounter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		PoolSize:     10,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return &RedisCounter{client: client}, nil
}

// Increment sets the TTL only on the first increment of a window
func (r *RedisCounter) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	val, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if val == 1 {
		if err := r.client.Expire(ctx, key, ttl).Err(); err != nil {
			return val, err
		}
	}
	return val, nil
}

// Close releases the Redis connection pool
func (r *RedisCounter) Close() error {
	return r.client.Close()
}

// RateLimit allows limit requests per client IP per minute. A nil counter or
// a non-positive limit disables it; counter errors let the request through.
func RateLimit(counter Counter, limit int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if counter == nil || limit <= 0 {
			c.Next()
			return
		}

		window := time.Now().Unix() / int64(rateWindow.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), window)

		count, err := counter.Increment(c.Request.Context(), key, rateWindow)
		if err != nil {
			logger.Log.Warn("rate_limit_failed", zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(limit) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(limit) {
			metrics.RateLimited.Inc()
			apierrors.TooManyRequests(c, "")
			return
		}
		c.Next()
	}
}

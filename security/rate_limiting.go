package security

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	redis *redis.Client
}

func NewRateLimiter(redisClient *redis.Client) *RateLimiter {
	return &RateLimiter{redis: redisClient}
}

// Allow counts a hit against key and reports whether it stays within
// limit for the window. Redis being down fails open: payments must not
// stall on the limiter.
func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) bool {
	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		return true
	}
	if count == 1 {
		r.redis.Expire(ctx, key, window)
	}
	return count <= int64(limit)
}

// PaymentRateLimit limits payment initializations per client IP.
func (r *RateLimiter) PaymentRateLimit(limit int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("ratelimit:payment:%s", c.RealIP())
			if !r.Allow(c.Request().Context(), key, limit, time.Minute) {
				return c.JSON(429, map[string]string{
					"error": "Too many requests",
				})
			}
			return next(c)
		}
	}
}

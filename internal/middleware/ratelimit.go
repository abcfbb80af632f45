package middleware

import (
	"fmt"
	"log/slog"
	"time"

	"anoa.com/apiplayground/pkg/ratelimiter"
	"anoa.com/apiplayground/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimit lets each client IP perform one request per window for the
// given action. It passes everything through when rdb is nil or window is 0.
// Redis failures are logged and the request is allowed. A request the
// handler rejects with a 4xx does not use up the window.
func RateLimit(rdb *redis.Client, action string, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || window <= 0 {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		subject := c.ClientIP()

		allowed, err := ratelimiter.CheckAndSetRateLimit(ctx, rdb, subject, action, window)
		if err != nil {
			slog.Warn("rate limit check failed, allowing request", "err", err)
			c.Next()
			return
		}

		if !allowed {
			ttl, err := ratelimiter.GetRateLimitTTL(ctx, rdb, subject, action)
			if err != nil || ttl <= 0 {
				ttl = window
			}
			rateLimitErr := &ratelimiter.RateLimitError{
				Message:    "Too many requests, please slow down",
				RetryAfter: ttl,
			}
			c.Header("Retry-After", fmt.Sprintf("%.0f", retryAfterSeconds(rateLimitErr.RetryAfter)))
			response.ResponseError(c, rateLimitErr)
			c.Abort()
			return
		}

		c.Next()

		if status := c.Writer.Status(); status >= 400 && status < 500 {
			if err := ratelimiter.ClearRateLimit(ctx, rdb, subject, action); err != nil {
				slog.Warn("failed to release rate limit window", "err", err)
			}
		}
	}
}

func retryAfterSeconds(d time.Duration) float64 {
	s := d.Seconds()
	if s < 1 {
		return 1
	}
	return s
}

package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter implements a fixed-window request counter backed by Redis.
// Authenticated requests are counted per user id, anonymous requests per
// client IP, with separate limits for each.
type RateLimiter struct {
	client    *redis.Client
	anonLimit int
	userLimit int
	window    time.Duration
}

func NewRateLimiter(client *redis.Client, anonLimit, userLimit int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, anonLimit: anonLimit, userLimit: userLimit, window: window}
}

// Limit returns the throttling middleware.
func (rl *RateLimiter) Limit() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		key, limit := rl.keyFor(c)

		ctx := c.Request.Context()
		count, err := rl.client.Incr(ctx, key).Result()
		if err != nil {
			// Redis unavailable must not take the API down with it.
			c.Next()
			return
		}
		if count == 1 {
			rl.client.Expire(ctx, key, rl.window)
		}

		if count > int64(limit) {
			ttl, err := rl.client.TTL(ctx, key).Result()
			if err != nil || ttl < 0 {
				ttl = rl.window
			}
			minutes := int(math.Ceil(ttl.Minutes()))
			if minutes < 1 {
				minutes = 1
			}
			c.JSON(http.StatusTooManyRequests, gin.H{
				"msg":         "request limit exceeded",
				"availableIn": fmt.Sprintf("%d minutes.", minutes),
			})
			c.Abort()
			return
		}

		c.Next()
	})
}

func (rl *RateLimiter) keyFor(c *gin.Context) (string, int) {
	if user, ok := CurrentUser(c); ok {
		return fmt.Sprintf("throttle:user:%d", user.ID), rl.userLimit
	}
	return fmt.Sprintf("throttle:anon:%s", c.ClientIP()), rl.anonLimit
}

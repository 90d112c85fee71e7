package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"user-crud-service/internal/adapter/ratelimit"
)

// RateLimiter rejects requests over the per-client token bucket with 429.
func RateLimiter(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Enabled() {
			c.Next()
			return
		}

		key := fmt.Sprintf("http:%s:%s:%s", c.Request.Method, c.FullPath(), c.ClientIP())
		if !limiter.Allow(c.Request.Context(), key) {
			cfg := limiter.Config()
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%.2f", cfg.RequestsPerSecond))
			c.Header("X-RateLimit-Burst", fmt.Sprintf("%d", cfg.BurstCapacity))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"detail": "rate limit exceeded",
				"error":  "rate_limit_exceeded",
			})
			return
		}

		c.Next()
	}
}

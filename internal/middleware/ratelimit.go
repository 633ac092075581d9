package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimit returns a Gin middleware enforcing a global request rate cap.
// A single-user household service does not need per-client buckets; one
// shared limiter is enough to keep an abusive client from hammering the
// FX provider endpoints.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "RATE_LIMITED",
					"message": "Too many requests",
				},
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

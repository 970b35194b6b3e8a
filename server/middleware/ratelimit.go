package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/ssehub/errors"
	"github.com/kbukum/ssehub/resilience"
)

// RateLimit rejects requests with 429 RATE_LIMITED and a Retry-After
// header while limiter has no tokens. The limiter is shared by every
// route the middleware is attached to.
func RateLimit(limiter *resilience.RateLimiter, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter.Allow() {
			c.Next()
			return
		}
		secs := int(math.Ceil(limiter.RetryAfter().Seconds()))
		c.Header("Retry-After", strconv.Itoa(max(1, secs)))
		abort(c, errors.RateLimited(resource))
	}
}

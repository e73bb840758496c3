package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitKeyPrefix = "health-metrics:rl:"

// rateCounter is the part of the redis client used by the rate limiter
type rateCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	TTL(ctx context.Context, key string) *redis.DurationCmd
}

// EnableUploadRateLimit limits dataset uploads to limit per window for each
// client address. Counters are kept in redis so that every instance shares
// them.
func (s *Server) EnableUploadRateLimit(client rateCounter, limit int, window time.Duration) {
	s.uploadLimiter = newRateLimiter(client, limit, window)
}

func newRateLimiter(client rateCounter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("%s%s", rateLimitKeyPrefix, c.ClientIP())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			log.WithError(err).Warn("rate limiter unavailable")
			c.Next()
			return
		}

		if count == 1 {
			client.Expire(ctx, key, window)
		}

		reset := 0
		if ttl, err := client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
			reset = int(ttl.Seconds())
		}

		remaining := limit - int(count)
		if remaining < 0 {
			remaining = 0
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))

		if count > int64(limit) {
			abortWithEncoding(c, http.StatusTooManyRequests, errorTooManyRequests)
			return
		}

		c.Next()
	}
}

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/health-metrics-api/store"
)

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Incr(ctx context.Context, key string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx, "incr", key)
	if f.err != nil {
		cmd.SetErr(f.err)
		return cmd
	}
	f.counts[key]++
	cmd.SetVal(f.counts[key])
	return cmd
}

func (f *fakeCounter) Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(ctx, "expire", key, expiration)
	cmd.SetVal(true)
	return cmd
}

func (f *fakeCounter) TTL(ctx context.Context, key string) *redis.DurationCmd {
	cmd := redis.NewDurationCmd(ctx, time.Second, "ttl", key)
	cmd.SetVal(30 * time.Second)
	return cmd
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	counter := &fakeCounter{counts: make(map[string]int64)}

	router := gin.New()
	router.POST("/", newRateLimiter(counter, 2, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i, expected := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, expected, w.Code, "request %d", i)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "30", w.Header().Get("X-RateLimit-Reset"))
	}

	assert.Len(t, counter.counts, 1)
	for key := range counter.counts {
		assert.Equal(t, rateLimitKeyPrefix+"192.0.2.1", key)
	}
}

func TestRateLimiterUnavailable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	counter := &fakeCounter{err: errors.New("connection refused")}

	router := gin.New()
	router.POST("/", newRateLimiter(counter, 1, time.Minute), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("POST", "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestUploadRateLimit(t *testing.T) {
	s := newTestServer(store.NewMemoryStore(time.Hour), nil)
	s.EnableUploadRateLimit(&fakeCounter{counts: make(map[string]int64)}, 1, time.Minute)
	router := s.setupRouter()

	uploadSample(t, router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/datasets", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code, "wrong status code")
	assert.Equal(t, errorTooManyRequests, decodeError(t, w))
}

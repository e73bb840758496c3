package api

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type metricCounter struct {
	Name  string            `json:"name"`
	Tags  map[string]string `json:"tags,omitempty"`
	Value int64             `json:"value"`
}

// metricsMiddleware counts requests and records their latency per route
func (s *Server) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		scope := s.metrics.Tagged(map[string]string{
			"route":  route,
			"method": c.Request.Method,
			"status": strconv.Itoa(c.Writer.Status()),
		})
		scope.Counter("requests").Inc(1)
		scope.Timer("latency").Record(time.Since(start))
	}
}

func (s *Server) getMetrics(c *gin.Context) {
	snapshot := s.metrics.Snapshot().Counters()

	keys := make([]string, 0, len(snapshot))
	for k := range snapshot {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	counters := make([]metricCounter, 0, len(keys))
	for _, k := range keys {
		cs := snapshot[k]
		counters = append(counters, metricCounter{
			Name:  cs.Name(),
			Tags:  cs.Tags(),
			Value: cs.Value(),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"counters": counters,
	})
}

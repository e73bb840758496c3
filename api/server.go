package api

import (
	"context"
	"net/http"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/uber-go/tally"

	"github.com/bitmark-inc/health-metrics-api/external/objectstore"
	"github.com/bitmark-inc/health-metrics-api/logmodule"
	"github.com/bitmark-inc/health-metrics-api/store"
)

const (
	metricsScopeName      = "health_metrics"
	defaultMaxUploadBytes = 10 << 20
	storeTimeout          = 5 * time.Second
)

var log *logrus.Entry

func init() {
	log = logrus.WithField("prefix", "gin")
}

// Server to run a http server instance
type Server struct {
	// Server instance
	server *http.Server

	// Stores
	store       store.SessionStore
	objectStore objectstore.ObjectStore

	// JWT signing secret and session lifetime
	jwtSecret  []byte
	sessionTTL time.Duration

	maxUploadBytes int64

	// rate limit of dataset uploads, nil when disabled
	uploadLimiter gin.HandlerFunc

	metrics tally.TestScope
	now     func() time.Time
}

// NewServer new instance of server. objectStore may be nil when no object
// storage is configured.
func NewServer(
	sessionStore store.SessionStore,
	objectStore objectstore.ObjectStore,
	jwtSecret []byte,
	sessionTTL time.Duration) *Server {
	maxUploadBytes := viper.GetInt64("server.max_upload_mb") << 20
	if maxUploadBytes <= 0 {
		maxUploadBytes = defaultMaxUploadBytes
	}

	return &Server{
		store:          sessionStore,
		objectStore:    objectStore,
		jwtSecret:      jwtSecret,
		sessionTTL:     sessionTTL,
		maxUploadBytes: maxUploadBytes,
		metrics:        tally.NewTestScope(metricsScopeName, map[string]string{}),
		now:            time.Now,
	}
}

// Run to run the server
func (s *Server) Run(addr string) error {
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.setupRouter(),
	}

	return s.server.ListenAndServe()
}

func (s *Server) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sentrygin.New(sentrygin.Options{
		Repanic:         true,
		WaitForDelivery: false,
		Timeout:         10 * time.Second,
	}))
	r.Use(s.metricsMiddleware())

	apiRoute := r.Group("/api")
	apiRoute.Use(logmodule.Ginrus("API"))
	apiRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Accept-Language"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))

	uploadHandlers := []gin.HandlerFunc{s.uploadDataset}
	if s.uploadLimiter != nil {
		uploadHandlers = append([]gin.HandlerFunc{s.uploadLimiter}, uploadHandlers...)
	}
	apiRoute.POST("/datasets", uploadHandlers...)

	// dataset routes require a token issued for the dataset
	datasetRoute := apiRoute.Group("/datasets/:datasetID")
	datasetRoute.Use(s.authMiddleware())
	datasetRoute.DELETE("", s.deleteDataset)

	datasetRoute.Use(s.recognizeDatasetMiddleware())
	{
		datasetRoute.GET("/statistics", s.getStatistics)
		datasetRoute.GET("/correlations", s.getCorrelations)
		datasetRoute.GET("/alerts", s.getAlerts)
		datasetRoute.GET("/normal-ranges", s.getNormalRanges)
		datasetRoute.GET("/activity", s.getActivity)
		datasetRoute.GET("/distributions/:column", s.getDistribution)
		datasetRoute.GET("/trends/:column", s.getTrend)
		datasetRoute.GET("/report", s.getReport)

		datasetRoute.POST("/filter", s.filterDataset)
		datasetRoute.POST("/export", s.exportDataset)
	}

	metricRoute := r.Group("/metrics")
	metricRoute.Use(logmodule.Ginrus("Metric"))
	metricRoute.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET"},
		AllowHeaders:     []string{"Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowAllOrigins:  true,
		MaxAge:           12 * time.Hour,
	}))
	metricRoute.Use(s.apikeyAuthentication(viper.GetString("server.apikey.metric")))
	{
		metricRoute.GET("", s.getMetrics)
	}

	r.GET("/healthz", s.healthz)

	return r
}

// Shutdown to shutdown the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// shouldInterupt sends error message and determine if it should interupt the current flow
func shouldInterupt(err error, c *gin.Context) bool {
	if err == nil {
		return false
	}

	log.Error(err)
	abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
	return true
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), storeTimeout)
	defer cancel()

	// Ping session store
	err := s.store.Ping(ctx)
	if shouldInterupt(err, c) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"version": viper.GetString("server.version"),
	})
}

func responseWithEncoding(c *gin.Context, code int, obj ErrorResponse) {
	acceptEncoding := c.GetHeader("Accept-Encoding")
	switch acceptEncoding {
	default:
		c.JSON(code, obj)
	}
}

func abortWithEncoding(c *gin.Context, code int, obj ErrorResponse, errors ...error) {
	for _, err := range errors {
		c.Error(err)
	}
	responseWithEncoding(c, code, obj)
	c.Abort()
}

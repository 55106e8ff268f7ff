package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/password-analyzer/internal/handler"
	"github.com/jwalitptl/password-analyzer/internal/middleware"
	"github.com/jwalitptl/password-analyzer/pkg/metrics"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine    *gin.Engine
	h         *handler.Handler
	passwordH Handler
	tipsH     Handler
	metrics   *metrics.Metrics
}

type RouterConfig struct {
	Mode         string
	CORSConfig   middleware.CORSConfig
	MaxBodyBytes int64
	Timeout      time.Duration
	// RateLimiter is nil when rate limiting is disabled
	RateLimiter gin.HandlerFunc
	// Metrics is nil when request metrics are disabled
	Metrics *metrics.Metrics
}

func NewRouter(
	h *handler.Handler,
	passwordH Handler,
	tipsH Handler,
	config RouterConfig,
) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}

	engine := gin.New()

	r := &Router{
		engine:    engine,
		h:         h,
		passwordH: passwordH,
		tipsH:     tipsH,
		metrics:   config.Metrics,
	}

	sizeLimit := middleware.DefaultSizeLimitConfig()
	if config.MaxBodyBytes > 0 {
		sizeLimit.MaxBodySize = config.MaxBodyBytes
	}
	timeout := middleware.DefaultTimeoutConfig()
	if config.Timeout > 0 {
		timeout.Duration = config.Timeout
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.ErrorHandler(),
		middleware.Validation(middleware.DefaultValidationConfig()),
	)
	if r.metrics != nil {
		engine.Use(r.metricsMiddleware())
	}
	engine.Use(
		middleware.Timeout(timeout),
		middleware.SecurityHeaders(middleware.DefaultSecurityConfig()),
		middleware.CORS(config.CORSConfig),
		middleware.SizeLimit(sizeLimit),
	)
	if config.RateLimiter != nil {
		engine.Use(config.RateLimiter)
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.h.RegisterRoutes(api)

	passwords := api.Group("")
	passwords.Use(middleware.Cache(middleware.NoStoreConfig()))
	r.passwordH.RegisterRoutes(passwords)

	static := api.Group("")
	static.Use(middleware.Cache(middleware.StaticCacheConfig()))
	r.tipsH.RegisterRoutes(static)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.ErrorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}

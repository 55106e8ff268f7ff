package middleware

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/password-analyzer/pkg/errors"
	"github.com/jwalitptl/password-analyzer/pkg/httputil"
	"github.com/jwalitptl/password-analyzer/pkg/metrics"
)

type RateLimiterConfig struct {
	RPS   float64
	Burst int
	// IdleTTL is how long an unused client bucket is kept
	IdleTTL time.Duration
}

// RateLimiter keeps one token bucket per client IP. Buckets of idle
// clients expire from the cache.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *cache.Cache
	limit    rate.Limit
	burst    int
	metrics  *metrics.Metrics
}

func NewRateLimiter(config RateLimiterConfig, m *metrics.Metrics) *RateLimiter {
	if config.IdleTTL == 0 {
		config.IdleTTL = 10 * time.Minute
	}
	return &RateLimiter{
		limiters: cache.New(config.IdleTTL, config.IdleTTL),
		limit:    rate.Limit(config.RPS),
		burst:    config.Burst,
		metrics:  m,
	}
}

func (rl *RateLimiter) limiterFor(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if v, ok := rl.limiters.Get(key); ok {
		l := v.(*rate.Limiter)
		rl.limiters.SetDefault(key, l)
		return l
	}
	l := rate.NewLimiter(rl.limit, rl.burst)
	rl.limiters.SetDefault(key, l)
	return l
}

// Allow reports whether a request for key may proceed
func (rl *RateLimiter) Allow(key string) bool {
	return rl.limiterFor(key).Allow()
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-RateLimit-Policy", "token-bucket")
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))

		if !rl.Allow(c.ClientIP()) {
			if rl.metrics != nil {
				rl.metrics.RateLimited.WithLabelValues("local").Inc()
			}
			c.Header("Retry-After", "1")
			httputil.AbortWithError(c, errors.TooManyRequests())
			return
		}
		c.Next()
	}
}

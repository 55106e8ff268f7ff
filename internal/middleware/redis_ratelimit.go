package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/password-analyzer/pkg/circuitbreaker"
	"github.com/jwalitptl/password-analyzer/pkg/errors"
	"github.com/jwalitptl/password-analyzer/pkg/httputil"
	"github.com/jwalitptl/password-analyzer/pkg/metrics"
)

// tokenBucketScript refills and takes one token atomically.
// Returns {allowed (1/0), remaining tokens, retry after ms}.
const tokenBucketScript = `
local key   = KEYS[1]
local rate  = tonumber(ARGV[1])
local cap   = tonumber(ARGV[2])

local t = redis.call('TIME')
local now_ms = (tonumber(t[1]) * 1000) + math.floor(tonumber(t[2]) / 1000)

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])

if tokens == nil then
  tokens = cap
  ts = now_ms
end

local delta_ms = now_ms - ts
if delta_ms > 0 then
  tokens = math.min(cap, tokens + (delta_ms / 1000.0) * rate)
end

local allowed = 0
local retry_after_ms = 0
if tokens >= 1.0 then
  tokens = tokens - 1.0
  allowed = 1
else
  retry_after_ms = math.ceil((1.0 - tokens) * 1000.0 / rate)
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now_ms)
redis.call('PEXPIRE', key, math.ceil((cap / rate) * 1000.0))

return {allowed, tostring(tokens), retry_after_ms}
`

type RedisRateLimiterConfig struct {
	RPS       float64
	Burst     int
	KeyPrefix string
	// Timeout bounds each Redis round trip
	Timeout time.Duration
}

// RedisRateLimiter shares token buckets between instances through Redis.
// When Redis is unavailable requests are let through and the breaker stops
// further calls until it half-opens.
type RedisRateLimiter struct {
	rdb     redis.Scripter
	script  *redis.Script
	cfg     RedisRateLimiterConfig
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
}

func NewRedisRateLimiter(rdb redis.Scripter, config RedisRateLimiterConfig, m *metrics.Metrics) *RedisRateLimiter {
	if config.Timeout == 0 {
		config.Timeout = 250 * time.Millisecond
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = "passcheck:rl"
	}
	return &RedisRateLimiter{
		rdb:    rdb,
		script: redis.NewScript(tokenBucketScript),
		cfg:    config,
		breaker: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-ratelimit",
			MaxRequests: 5,
			Timeout:     10 * time.Second,
		}),
		metrics: m,
	}
}

type bucketState struct {
	allowed      bool
	remaining    string
	retryAfterMs int64
}

func (rl *RedisRateLimiter) take(ctx context.Context, key string) (bucketState, error) {
	var state bucketState
	err := rl.breaker.Execute(func() error {
		ctx, cancel := context.WithTimeout(ctx, rl.cfg.Timeout)
		defer cancel()

		res, err := rl.script.Run(ctx, rl.rdb, []string{key},
			strconv.FormatFloat(rl.cfg.RPS, 'f', -1, 64),
			strconv.Itoa(rl.cfg.Burst),
		).Slice()
		if err != nil {
			return err
		}
		state = parseBucketReply(res)
		return nil
	})
	return state, err
}

func (rl *RedisRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.cfg.KeyPrefix + ":" + c.ClientIP()

		state, err := rl.take(c.Request.Context(), key)
		if err != nil {
			log.Warn().
				Err(err).
				Str("request_id", c.GetString(ContextRequestID)).
				Str("breaker", rl.breaker.State()).
				Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Policy", "token-bucket")
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.cfg.Burst))
		c.Header("X-RateLimit-Remaining", state.remaining)

		if !state.allowed {
			sec := (state.retryAfterMs + 999) / 1000
			if sec < 1 {
				sec = 1
			}
			c.Header("Retry-After", strconv.FormatInt(sec, 10))
			if rl.metrics != nil {
				rl.metrics.RateLimited.WithLabelValues("redis").Inc()
			}
			httputil.AbortWithError(c, errors.TooManyRequests())
			return
		}

		c.Next()
	}
}

func parseBucketReply(res []interface{}) bucketState {
	var state bucketState
	if len(res) != 3 {
		return bucketState{allowed: true, remaining: "0"}
	}
	state.allowed = toInt64(res[0]) == 1
	state.remaining = remainingTokens(res[1])
	state.retryAfterMs = toInt64(res[2])
	return state
}

// remainingTokens floors the fractional token count reported by the script
func remainingTokens(v interface{}) string {
	switch t := v.(type) {
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return "0"
		}
		return strconv.FormatInt(int64(f), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return "0"
	}
}

func toInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case string:
		i, _ := strconv.ParseInt(t, 10, 64)
		return i
	default:
		return 0
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/password-analyzer/internal/config"
	"github.com/jwalitptl/password-analyzer/internal/handler"
	"github.com/jwalitptl/password-analyzer/internal/handler/password"
	"github.com/jwalitptl/password-analyzer/internal/handler/tips"
	"github.com/jwalitptl/password-analyzer/internal/middleware"
	"github.com/jwalitptl/password-analyzer/internal/router"
	"github.com/jwalitptl/password-analyzer/internal/service/analyzer"
	"github.com/jwalitptl/password-analyzer/internal/session"
	"github.com/jwalitptl/password-analyzer/pkg/logger"
	"github.com/jwalitptl/password-analyzer/pkg/metrics"
	"github.com/jwalitptl/password-analyzer/pkg/strength"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("PASSCHECK_CONFIG_FILE"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		JSON:       cfg.Log.JSON,
	})
	appLogger.SetGlobal()

	m := metrics.NewMetrics(cfg.Metrics.Namespace, "analyzer")

	// Initialize core
	scorer := strength.NewScorer(strength.WithWeights(cfg.ScoringWeights()))
	var genOpts []strength.GeneratorOption
	if cfg.Generator.SecureRandom {
		genOpts = append(genOpts, strength.WithSecureRandom())
	}
	generator := strength.NewGenerator(genOpts...)

	// Initialize services
	sessions := session.NewStore(cfg.Session.TTL, cfg.Session.CleanupInterval)
	analyzerSvc := analyzer.NewService(scorer, generator, sessions, m, appLogger, analyzer.Config{
		DefaultLength: cfg.Generator.DefaultLength,
		MaxLength:     cfg.Generator.MaxLength,
	})

	// Initialize handlers
	h := handler.NewHandler(m.Registry())

	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.Redis.URL != "" {
			rdb, err := newRedisClient(cfg.Redis)
			if err != nil {
				log.Fatal().Err(err).Msg("failed to configure Redis")
			}
			defer rdb.Close()

			h.AddCheck("redis", func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			})
			limiter = middleware.NewRedisRateLimiter(rdb, middleware.RedisRateLimiterConfig{
				RPS:       cfg.RateLimit.RequestsPerSecond,
				Burst:     cfg.RateLimit.Burst,
				KeyPrefix: cfg.Redis.KeyPrefix,
			}, m).RateLimit()
			log.Info().Msg("using Redis rate limiter")
		} else {
			limiter = middleware.NewRateLimiter(middleware.RateLimiterConfig{
				RPS:   cfg.RateLimit.RequestsPerSecond,
				Burst: cfg.RateLimit.Burst,
			}, m).RateLimit()
		}
	}

	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		cors.AllowOrigins = cfg.CORS.AllowedOrigins
	}

	routerConfig := router.RouterConfig{
		Mode:         cfg.Server.Mode,
		CORSConfig:   cors,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		Timeout:      cfg.Server.RequestTimeout,
		RateLimiter:  limiter,
	}
	if cfg.Metrics.Enabled {
		routerConfig.Metrics = m
	}

	r := router.NewRouter(
		h,
		password.NewHandler(analyzerSvc),
		tips.NewHandler(analyzerSvc),
		routerConfig,
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

func newRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	return redis.NewClient(opts), nil
}

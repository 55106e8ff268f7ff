package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/jwalitptl/password-analyzer/pkg/strength"
	"github.com/jwalitptl/password-analyzer/pkg/validator"
)

const envPrefix = "PASSCHECK"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Redis     RedisConfig     `mapstructure:"redis"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Session   SessionConfig   `mapstructure:"session"`
	Generator GeneratorConfig `mapstructure:"generator"`
	Scoring   ScoringConfig   `mapstructure:"scoring"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"gt=0,lte=65535"`
	Mode            string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	// RequestTimeout bounds handler work; it must leave time to write the reply
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"gt=0,ltfield=WriteTimeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes" validate:"gt=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"gt=0"`
	Burst             int     `mapstructure:"burst" validate:"gt=0"`
}

// RedisConfig enables the shared token bucket limiter when URL is set
type RedisConfig struct {
	URL         string        `mapstructure:"url" validate:"omitempty,url"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	KeyPrefix   string        `mapstructure:"key_prefix"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl" validate:"gt=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"gt=0"`
}

type GeneratorConfig struct {
	DefaultLength int  `mapstructure:"default_length" validate:"gte=8"`
	MaxLength     int  `mapstructure:"max_length" validate:"gtefield=DefaultLength,lte=4096"`
	SecureRandom  bool `mapstructure:"secure_random"`
}

// ScoringConfig overrides individual weights. Unset criteria keep the stock value.
type ScoringConfig struct {
	Weights map[string]float64 `mapstructure:"weights"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 5*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_body_bytes", 8<<10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 5.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("redis.url", "")
	v.SetDefault("redis.dial_timeout", 2*time.Second)
	v.SetDefault("redis.key_prefix", "passcheck:rl")

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("session.ttl", 15*time.Minute)
	v.SetDefault("session.cleanup_interval", 5*time.Minute)

	v.SetDefault("generator.default_length", 16)
	v.SetDefault("generator.max_length", 128)
	v.SetDefault("generator.secure_random", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "passcheck")
}

// LoadConfig reads config.yml from path (or the usual search locations when
// path is empty), then applies PASSCHECK_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate checks field constraints and weight overrides
func (c *Config) Validate() error {
	if err := validator.New().Validate(c); err != nil {
		return err
	}

	known := make(map[strength.Criterion]bool)
	for _, crit := range strength.Criteria() {
		known[crit] = true
	}
	for name, w := range c.Scoring.Weights {
		if !known[strength.Criterion(name)] {
			return fmt.Errorf("scoring.weights: unknown criterion %q", name)
		}
		if w < 0 {
			return fmt.Errorf("scoring.weights.%s must not be negative", name)
		}
	}
	return nil
}

// ScoringWeights merges the configured overrides over the stock weights
func (c *Config) ScoringWeights() strength.Weights {
	weights := strength.DefaultWeights()
	for name, w := range c.Scoring.Weights {
		weights[strength.Criterion(name)] = w
	}
	return weights
}

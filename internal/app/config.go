package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const devSecret = "funnelboard-dev-secret"

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv             string        `envconfig:"APP_ENV" default:"development" validate:"oneof=development staging production"`
	AppAddr            string        `envconfig:"APP_ADDR" default:":8080" validate:"required"`
	AppReadTimeout     time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s" validate:"gt=0"`
	AppWriteTimeout    time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s" validate:"gt=0"`
	AppRequestTimeout  time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"60s" validate:"gt=0"`
	AppShutdownTimeout time.Duration `envconfig:"APP_SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty" validate:"oneof=pretty json"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379" validate:"required"`
	SessionSecret string        `envconfig:"SESSION_SECRET" default:""`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"720h" validate:"gt=0"`
	CSRFSecret    string        `envconfig:"CSRF_SECRET" default:""`

	RateLimitRPM int `envconfig:"RATE_LIMIT_RPM" default:"120" validate:"gt=0"`

	FunnelSeed      int64         `envconfig:"FUNNEL_SEED" default:"11"`
	HistoryCacheTTL time.Duration `envconfig:"HISTORY_CACHE_TTL" default:"10m" validate:"gt=0"`
}

// LoadConfig reads configuration from environment variables. Development
// falls back to fixed secrets; production must provide its own.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config invalid: %w", err)
	}
	if cfg.IsProduction() {
		if cfg.SessionSecret == "" {
			return nil, errors.New("session secret must be provided in production")
		}
		if cfg.CSRFSecret == "" {
			return nil, errors.New("csrf secret must be provided in production")
		}
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = devSecret
	}
	if cfg.CSRFSecret == "" {
		cfg.CSRFSecret = devSecret
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

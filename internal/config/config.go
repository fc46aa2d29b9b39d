// Package config loads and validates app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the HTTP server listens on (e.g. :8008).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN; required by server, worker, migrate and seed.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// SessionRetention is how long an in-flight setup session is kept before the
	// cleanup sweep deletes it (e.g. "24h").
	SessionRetention string `mapstructure:"SESSION_RETENTION"`
	// CleanupSchedule is the cron spec the worker runs the session sweep on (e.g. "@daily").
	CleanupSchedule string `mapstructure:"CLEANUP_SCHEDULE"`
	// OTLPEndpoint is the OTLP collector endpoint (e.g. http://localhost:4317).
	// Empty disables telemetry export; no-op providers are used instead.
	OTLPEndpoint string `mapstructure:"OTLP_ENDPOINT"`
	// OTLPInsecure forces plaintext OTLP export even for https endpoints.
	OTLPInsecure bool `mapstructure:"OTLP_INSECURE"`
	// Env is the application environment (e.g. "development", "production").
	Env string `mapstructure:"APP_ENV"`
}

// Load reads .env (if present), then builds and validates Config from the environment via Viper.
// Missing .env is ignored (e.g. in CI). Env vars override .env. Returns an error if required fields are invalid.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore ErrConfigFileNotFound

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8008")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SESSION_RETENTION", "24h")
	v.SetDefault("CLEANUP_SCHEDULE", "@daily")
	v.SetDefault("OTLP_ENDPOINT", "")
	v.SetDefault("OTLP_INSECURE", false)
	v.SetDefault("APP_ENV", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if d, err := time.ParseDuration(cfg.SessionRetention); err == nil && d <= 0 {
		return nil, errors.New("config: SESSION_RETENTION must be positive")
	}

	return &cfg, nil
}

// Retention parses SessionRetention as a time.Duration. Returns 24h if unset or invalid.
func (c *Config) Retention() time.Duration {
	d, err := time.ParseDuration(c.SessionRetention)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

// Package config loads client settings from the environment (12-factor).
//
// Environment Variables:
//   - WLS_HOST, WLS_USERNAME, WLS_PASSWORD, WLS_VERSION
//   - WLS_SKIP_TLS_VERIFY, WLS_TIMEOUT
//   - WLS_RATE_LIMIT_RPS, WLS_BREAKER_ENABLED
//   - LOG_LEVEL, LOG_DEV
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all client configuration.
type Config struct {
	WLS     WLSConfig
	Logging LogConfig
}

// WLSConfig holds the management server connection settings.
type WLSConfig struct {
	Host          string        `envconfig:"WLS_HOST"`
	Username      string        `envconfig:"WLS_USERNAME"`
	Password      string        `envconfig:"WLS_PASSWORD"`
	Version       string        `envconfig:"WLS_VERSION" default:"latest"`
	SkipTLSVerify bool          `envconfig:"WLS_SKIP_TLS_VERIFY" default:"false"`
	Timeout       time.Duration `envconfig:"WLS_TIMEOUT" default:"305s"`
	RateLimit     float64       `envconfig:"WLS_RATE_LIMIT_RPS" default:"0"`
	Breaker       bool          `envconfig:"WLS_BREAKER_ENABLED" default:"false"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		WLS: WLSConfig{
			Version: "latest",
			Timeout: 305 * time.Second,
		},
		Logging: LogConfig{
			Level: "info",
		},
	}
}

// Validate checks the settings a session cannot start without.
func (c *Config) Validate() error {
	if c.WLS.Host == "" {
		return errors.New("WLS_HOST required")
	}
	if c.WLS.Timeout < 0 {
		return fmt.Errorf("WLS_TIMEOUT must not be negative, got %s", c.WLS.Timeout)
	}
	if c.WLS.RateLimit < 0 {
		return fmt.Errorf("WLS_RATE_LIMIT_RPS must not be negative, got %v", c.WLS.RateLimit)
	}
	return nil
}

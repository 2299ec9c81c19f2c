// Package config provides configuration management for the valley-oracle
// server. It handles environment variable loading, validation, and
// provides safe defaults for production deployment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"valley-oracle/pkg/version"
)

// Config represents the server configuration with environment variable
// support. All values can be set via environment variables or fall back
// to defaults appropriate for production deployment.
type Config struct {
	// ServerPort is the port the HTTP server will listen on
	ServerPort int `json:"server_port"`

	// LogLevel controls the logging verbosity (debug, info, warn, error)
	LogLevel string `json:"log_level"`

	// AllowedOrigins is a list of allowed WebSocket origins for CORS
	AllowedOrigins []string `json:"allowed_origins"`

	// RequestTimeout is the maximum duration for processing requests
	RequestTimeout time.Duration `json:"request_timeout"`

	// EnableDevMode enables development-friendly settings: the WebSocket
	// endpoint accepts any origin. It does not change the log level.
	EnableDevMode bool `json:"enable_dev_mode"`

	// Rate limiting configuration

	// RateLimitEnabled enables rate limiting middleware
	RateLimitEnabled bool `json:"rate_limit_enabled"`

	// RateLimitRequestsPerSecond is the number of requests allowed per
	// second per IP
	RateLimitRequestsPerSecond float64 `json:"rate_limit_requests_per_second"`

	// RateLimitBurst is the maximum number of requests allowed in a
	// burst per IP
	RateLimitBurst int `json:"rate_limit_burst"`

	// RateLimitCleanupInterval is how often to clean up expired rate
	// limiters
	RateLimitCleanupInterval time.Duration `json:"rate_limit_cleanup_interval"`

	// Search configuration

	// SearchWorkers is the number of goroutines a search job fans out to
	SearchWorkers int `json:"search_workers"`

	// SearchMaxResults caps matches per search request
	SearchMaxResults int `json:"search_max_results"`

	// SearchMaxSpan caps the width of a seed interval per request
	SearchMaxSpan int64 `json:"search_max_span"`

	// DefaultVersion is the game version assumed when a request omits one
	DefaultVersion version.Version `json:"default_version"`

	// ShutdownTimeout is the maximum duration for graceful server shutdown
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
}

// DefaultConfig returns a Config populated with production-safe defaults.
func DefaultConfig() *Config {
	return &Config{
		ServerPort:                 8080,
		LogLevel:                   "info",
		AllowedOrigins:             []string{},
		RequestTimeout:             30 * time.Second,
		EnableDevMode:              false,
		RateLimitEnabled:           true,
		RateLimitRequestsPerSecond: 20,
		RateLimitBurst:             40,
		RateLimitCleanupInterval:   5 * time.Minute,
		SearchWorkers:              4,
		SearchMaxResults:           1000,
		SearchMaxSpan:              100_000_000,
		DefaultVersion:             version.V1_6,
		ShutdownTimeout:            10 * time.Second,
	}
}

// Load builds a Config from environment variables on top of the defaults.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := loadInt("ORACLE_PORT", &cfg.ServerPort); err != nil {
		return nil, err
	}
	if v := os.Getenv("ORACLE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ORACLE_ALLOWED_ORIGINS"); v != "" {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}
	if err := loadDuration("ORACLE_REQUEST_TIMEOUT", &cfg.RequestTimeout); err != nil {
		return nil, err
	}
	if err := loadBool("ORACLE_DEV_MODE", &cfg.EnableDevMode); err != nil {
		return nil, err
	}
	if err := loadBool("ORACLE_RATE_LIMIT_ENABLED", &cfg.RateLimitEnabled); err != nil {
		return nil, err
	}
	if err := loadFloat("ORACLE_RATE_LIMIT_RPS", &cfg.RateLimitRequestsPerSecond); err != nil {
		return nil, err
	}
	if err := loadInt("ORACLE_RATE_LIMIT_BURST", &cfg.RateLimitBurst); err != nil {
		return nil, err
	}
	if err := loadDuration("ORACLE_RATE_LIMIT_CLEANUP", &cfg.RateLimitCleanupInterval); err != nil {
		return nil, err
	}
	if err := loadInt("ORACLE_SEARCH_WORKERS", &cfg.SearchWorkers); err != nil {
		return nil, err
	}
	if err := loadInt("ORACLE_SEARCH_MAX_RESULTS", &cfg.SearchMaxResults); err != nil {
		return nil, err
	}
	if err := loadInt64("ORACLE_SEARCH_MAX_SPAN", &cfg.SearchMaxSpan); err != nil {
		return nil, err
	}
	if v := os.Getenv("ORACLE_DEFAULT_VERSION"); v != "" {
		parsed, err := version.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("ORACLE_DEFAULT_VERSION: %w", err)
		}
		cfg.DefaultVersion = parsed
	}
	if err := loadDuration("ORACLE_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.ServerPort < 1 || c.ServerPort > 65535 {
		return fmt.Errorf("server port must be in [1, 65535], have %d", c.ServerPort)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, have %s", c.RequestTimeout)
	}
	if c.RateLimitEnabled {
		if c.RateLimitRequestsPerSecond <= 0 {
			return fmt.Errorf("rate limit rps must be positive, have %v", c.RateLimitRequestsPerSecond)
		}
		if c.RateLimitBurst < 1 {
			return fmt.Errorf("rate limit burst must be >= 1, have %d", c.RateLimitBurst)
		}
	}
	if c.SearchWorkers < 1 {
		return fmt.Errorf("search workers must be >= 1, have %d", c.SearchWorkers)
	}
	if c.SearchMaxResults < 1 {
		return fmt.Errorf("search max results must be >= 1, have %d", c.SearchMaxResults)
	}
	if c.SearchMaxSpan < 1 {
		return fmt.Errorf("search max span must be >= 1, have %d", c.SearchMaxSpan)
	}
	return nil
}

// ConfigureLogger applies the configured level and formatter to the
// standard logrus logger.
func (c *Config) ConfigureLogger() {
	level, err := logrus.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}

func loadInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func loadInt64(key string, dst *int64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func loadFloat(key string, dst *float64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func loadBool(key string, dst *bool) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

func loadDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = parsed
	return nil
}

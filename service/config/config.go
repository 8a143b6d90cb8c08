package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brojonat/minisol/service/solana"
)

// Config holds the settings for a single CLI invocation.
// It is built from global flags only; no environment variables are read.
type Config struct {
	// Cluster selection
	Cluster solana.Cluster

	// RPC configuration
	RequestTimeout time.Duration

	// Output configuration
	LogLevel   string
	ShowBanner bool

	// Metrics configuration
	MetricsTextfile string
}

// Default returns the configuration used when no flags are given.
func Default() Config {
	return Config{
		Cluster:        solana.Devnet,
		RequestTimeout: solana.DefaultRequestTimeout,
		LogLevel:       "warn",
		ShowBanner:     true,
	}
}

// Flags carries the raw global flag values before validation.
type Flags struct {
	Cluster         string
	Timeout         time.Duration
	LogLevel        string
	MetricsTextfile string
	NoBanner        bool
}

// Load builds a Config from raw flag values and validates all fields.
// Returns an error describing every invalid field.
func Load(f Flags) (*Config, error) {
	cfg := &Config{
		Cluster:         solana.Cluster(f.Cluster),
		RequestTimeout:  f.Timeout,
		LogLevel:        strings.ToLower(f.LogLevel),
		ShowBanner:      !f.NoBanner,
		MetricsTextfile: f.MetricsTextfile,
	}
	if cluster, err := solana.ParseCluster(f.Cluster); err == nil {
		cfg.Cluster = cluster
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if _, err := solana.ParseCluster(c.Cluster.String()); err != nil {
		errs = append(errs, err)
	}

	if c.RequestTimeout < time.Second {
		errs = append(errs, fmt.Errorf("request timeout must be at least 1 second, got %v", c.RequestTimeout))
	}

	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %v", errs)
	}
	return nil
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q (expected debug, info, warn or error)", level)
}

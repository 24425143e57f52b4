// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every tunable of the state layer. Defaults reproduce the
// site's behavior: an 800ms login round trip, a 2s payment processing
// simulation, and a 2MB per-value store quota.
type Config struct {
	DBPath   string `env:"DB_PATH" envDefault:"./data/refresko.db"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	LoginDelay      time.Duration `env:"LOGIN_DELAY" envDefault:"800ms"`
	ProcessingDelay time.Duration `env:"PROCESSING_DELAY" envDefault:"2s"`

	// StoreMaxValueBytes caps one stored value; oversized screenshot
	// payloads are dropped best-effort. Zero disables the cap.
	StoreMaxValueBytes int `env:"STORE_MAX_VALUE_BYTES" envDefault:"2097152"`

	// MetricsAddr, when set (e.g. ":9090"), serves Prometheus metrics.
	MetricsAddr string `env:"METRICS_ADDR"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

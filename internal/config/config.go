// Package config provides configuration for the registry server binary.
// Values are loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the server configuration.
// All fields are populated from environment variables.
type Config struct {
	AppPort int `env:"APP_PORT" envDefault:"8080"`

	// RegistryTarget is the opaque storage locator recorded by the registry.
	// It is logged at startup and never dialed.
	RegistryTarget string `env:"REGISTRY_TARGET" envDefault:"sqlite:///users.db"`

	// Logging
	LogFile   string `env:"LOG_FILE" envDefault:""`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`

	// Request body size limit in bytes (default 10MB)
	MaxRequestBodySize int `env:"MAX_REQUEST_BODY_SIZE" envDefault:"10485760"`

	// Whether to warm up the normalizer pools on startup
	WarmUp bool `env:"WARM_UP" envDefault:"true"`
}

// JSONLogs returns true if logs should be emitted as JSON.
func (c *Config) JSONLogs() bool {
	return c.LogFormat == "json"
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

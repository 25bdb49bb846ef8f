package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server    ServerConfig
	API       APIConfig
	CORS      CORSConfig
	Telemetry TelemetryConfig
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Port            string `env:"PORT" envDefault:"8080"`
	Host            string `env:"HOST" envDefault:"0.0.0.0"`
	ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"15"`
	WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
	ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"`
	SecureCookies   bool   `env:"SECURE_COOKIES" envDefault:"false"`
}

// APIConfig points at the upstream inventory API.
// A zero Timeout means requests are bounded only by the inbound request.
type APIConfig struct {
	BaseURL string        `env:"INVENTORY_API_URL" envDefault:"https://func-backend-ivan.azurewebsites.net/api/inventoryapi"`
	Timeout time.Duration `env:"INVENTORY_API_TIMEOUT" envDefault:"0s"`
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

type TelemetryConfig struct {
	Endpoint string `env:"OTEL_ENDPOINT"`
	Enabled  bool   `env:"OTEL_ENABLED" envDefault:"true"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("INVENTORY_API_URL must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}

	if c.API.Timeout < 0 {
		return fmt.Errorf("INVENTORY_API_TIMEOUT must not be negative")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Package config reads process settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"go-chi-calculator/internal/handlers"
)

// Config holds the settings of both binaries. Each field maps to the
// environment variable in its mapstructure tag.
type Config struct {
	HTTPAddr           string        `mapstructure:"HTTP_ADDR"`
	WebAddr            string        `mapstructure:"WEB_ADDR"`
	CalculatorURL      string        `mapstructure:"CALCULATOR_URL"`
	ClientTimeout      time.Duration `mapstructure:"CLIENT_TIMEOUT"`
	ShutdownTimeout    time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
	TelemetryEnabled   bool          `mapstructure:"TELEMETRY_ENABLED"`
	ServiceName        string        `mapstructure:"SERVICE_NAME"`
	ServiceVersion     string        `mapstructure:"SERVICE_VERSION"`
	ServiceDescription string        `mapstructure:"SERVICE_DESCRIPTION"`
}

var defaults = map[string]any{
	"HTTP_ADDR":           ":8081",
	"WEB_ADDR":            ":3000",
	"CALCULATOR_URL":      "http://localhost:8081",
	"CLIENT_TIMEOUT":      "10s",
	"SHUTDOWN_TIMEOUT":    "5s",
	"TELEMETRY_ENABLED":   false,
	"SERVICE_NAME":        "calculator-backend",
	"SERVICE_VERSION":     "1.1.0",
	"SERVICE_DESCRIPTION": "Enhanced calculator with health checks",
}

// loadDotEnv loads environment variables from .env when present.
// Existing process environment variables are not overridden.
func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load .env: %w", err)
}

// Load builds a Config from defaults overridden by environment variables,
// including those set in a .env file in the working directory.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := viper.New()
	v.AutomaticEnv()

	// Unmarshal only sees keys viper knows about; defaults register them all
	// so that AutomaticEnv can override each one.
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.ClientTimeout <= 0 {
		return nil, fmt.Errorf("CLIENT_TIMEOUT must be positive, got %s", cfg.ClientTimeout)
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}

	return cfg, nil
}

// ServiceInfo returns the identity reported by /health and /version.
func (c *Config) ServiceInfo() handlers.ServiceInfo {
	return handlers.ServiceInfo{
		Name:        c.ServiceName,
		Version:     c.ServiceVersion,
		Description: c.ServiceDescription,
	}
}

// Package config loads service configuration from an optional JSON
// file with environment variable overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all service configuration.
type Config struct {
	Server     ServerConfig     `json:"server"`
	Simulation SimulationConfig `json:"simulation"`
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host string `json:"host"`
	Port string `json:"port"`
	// Allowed CORS origins, comma-separated.
	AllowedOrigins string `json:"allowed_origins"`
	// Graceful shutdown window in seconds.
	ShutdownTimeout int `json:"shutdown_timeout"`
}

// SimulationConfig tunes the demo-facing behavior of the engine.
type SimulationConfig struct {
	// Artificial latency before counter-offer responses, in
	// milliseconds, so the demo UI can show competitors "thinking".
	CounterOfferDelayMS int `json:"counter_offer_delay_ms"`
}

// Load builds the configuration from defaults, then the JSON file at
// path (when non-empty), then environment variables. Environment
// variables take precedence over file values.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            "",
			Port:            "8080",
			AllowedOrigins:  "*",
			ShutdownTimeout: 10,
		},
		Simulation: SimulationConfig{
			CounterOfferDelayMS: 800,
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	overrideFromEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if host, ok := os.LookupEnv("SERVER_HOST"); ok {
		cfg.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.Server.AllowedOrigins = origins
	}
	if timeout := os.Getenv("SHUTDOWN_TIMEOUT"); timeout != "" {
		if v, err := strconv.Atoi(timeout); err == nil {
			cfg.Server.ShutdownTimeout = v
		}
	}
	if delay := os.Getenv("COUNTER_OFFER_DELAY_MS"); delay != "" {
		if v, err := strconv.Atoi(delay); err == nil {
			cfg.Simulation.CounterOfferDelayMS = v
		}
	}
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("server port must be numeric: %q", c.Server.Port)
	}
	if c.Simulation.CounterOfferDelayMS < 0 {
		return fmt.Errorf("counter offer delay must not be negative")
	}
	return nil
}

// Addr returns the host:port pair the server should listen on.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// Origins returns the allowed CORS origins as a slice.
func (c *Config) Origins() []string {
	parts := strings.Split(c.Server.AllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

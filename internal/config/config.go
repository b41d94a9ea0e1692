// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package config

import (
	"time"

	"github.com/tomtom215/cinegraph/internal/algoapi"
	"github.com/tomtom215/cinegraph/internal/events"
	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/models"
)

// Config holds all application configuration.
//
// Configuration is loaded in layers (see LoadWithKoanf): struct defaults,
// then an optional YAML file, then environment variables.
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	API       APIConfig       `koanf:"api"`
	Selection SelectionConfig `koanf:"selection"`
	Status    StatusConfig    `koanf:"status"`
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	Events    EventsConfig    `koanf:"events"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// APIConfig locates the Algorithm Service and tunes the HTTP client.
//
// Environment Variables:
//   - CATALOG_API_URL (legacy NEXT_PUBLIC_API_URL): catalog root
//   - ALGORITHM_API_URL (legacy NEXT_PUBLIC_API_ALG): algorithms root
//   - API_TIMEOUT: whole-exchange timeout (default: 30s)
//   - API_REQUESTS_PER_SECOND / API_BURST: outbound pacing (default: off)
type APIConfig struct {
	CatalogURL        string        `koanf:"catalog_url" validate:"required,http_url"`
	AlgorithmsURL     string        `koanf:"algorithms_url" validate:"required,http_url"`
	Timeout           time.Duration `koanf:"timeout" validate:"gt=0"`
	InfoTimeout       time.Duration `koanf:"info_timeout" validate:"gt=0"`
	MaxBodyBytes      int64         `koanf:"max_body_bytes" validate:"gte=0"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gte=0"`
	Burst             int           `koanf:"burst" validate:"gte=0"`
	UserAgent         string        `koanf:"user_agent"`
	Breaker           BreakerConfig `koanf:"breaker"`
}

// BreakerConfig tunes the circuit breaker in front of the Algorithm Service.
type BreakerConfig struct {
	Enabled     bool          `koanf:"enabled"`
	MaxRequests uint32        `koanf:"max_requests"`
	Interval    time.Duration `koanf:"interval" validate:"gte=0"`
	Timeout     time.Duration `koanf:"timeout" validate:"gte=0"`
	MinRequests uint32        `koanf:"min_requests"`
	FailureRate float64       `koanf:"failure_rate" validate:"gte=0,lte=1"`
}

// SelectionConfig holds the budgets used when a request leaves them unset,
// and the genre options offered to renderers.
type SelectionConfig struct {
	MarathonMinutes int      `koanf:"marathon_minutes" validate:"gt=0"`
	ExactMinutes    int      `koanf:"exact_minutes" validate:"gt=0"`
	DPMinutes       int      `koanf:"dp_minutes" validate:"gt=0"`
	BBMinutes       int      `koanf:"bb_minutes" validate:"gt=0"`
	Depth           int      `koanf:"depth" validate:"gt=0,lte=10"`
	Limit           int      `koanf:"limit" validate:"gt=0"`
	TopN            int      `koanf:"top_n" validate:"gt=0"`
	Minimum         int      `koanf:"minimum" validate:"gt=0"`
	CombinationSize int      `koanf:"combination_size" validate:"gt=0"`
	GenreMix        []string `koanf:"genre_mix" validate:"min=1,dive,genre"`
	GenreOptions    []string `koanf:"genre_options" validate:"dive,genre"`
}

// StatusConfig tunes the status slot.
type StatusConfig struct {
	// TTL is how long a notification stays visible. STATUS_TTL accepts a
	// duration ("3s") or bare milliseconds ("3000").
	TTL time.Duration `koanf:"ttl" validate:"gt=0"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout     time.Duration `koanf:"idle_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// EventsConfig tunes the internal event bus and its optional NATS fan-out.
type EventsConfig struct {
	BufferSize int64      `koanf:"buffer_size" validate:"gt=0"`
	NATS       NATSConfig `koanf:"nats"`
}

// NATSConfig configures the NATS fan-out (requires the nats build tag).
type NATSConfig struct {
	Enabled        bool          `koanf:"enabled"`
	URL            string        `koanf:"url"`
	EmbeddedServer bool          `koanf:"embedded_server"`
	EmbeddedPort   int           `koanf:"embedded_port"`
	MaxReconnects  int           `koanf:"max_reconnects"`
	ReconnectWait  time.Duration `koanf:"reconnect_wait"`
}

// LoggingConfig holds logging configuration.
//
// Environment Variables:
//   - LOG_LEVEL: trace, debug, info, warn, error (default: info)
//   - LOG_FORMAT: json, console (default: json)
//   - LOG_CALLER: true/false - include caller file:line (default: false)
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from defaults, config file and environment.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// SelectionDefaults converts the configured budgets to a Selection.
func (c *Config) SelectionDefaults() models.Selection {
	s := c.Selection
	return models.Selection{
		MarathonMinutes: models.Int(s.MarathonMinutes),
		ExactMinutes:    models.Int(s.ExactMinutes),
		DPMinutes:       models.Int(s.DPMinutes),
		BBMinutes:       models.Int(s.BBMinutes),
		Depth:           models.Int(s.Depth),
		Limit:           models.Int(s.Limit),
		TopN:            models.Int(s.TopN),
		Minimum:         models.Int(s.Minimum),
		CombinationSize: models.Int(s.CombinationSize),
		Genres:          append([]string(nil), s.GenreMix...),
	}
}

// ClientConfig returns the Algorithm Service client settings.
func (c *Config) ClientConfig() algoapi.Config {
	return algoapi.Config{
		CatalogURL:        c.API.CatalogURL,
		AlgorithmsURL:     c.API.AlgorithmsURL,
		Timeout:           c.API.Timeout,
		MaxBodyBytes:      c.API.MaxBodyBytes,
		RequestsPerSecond: c.API.RequestsPerSecond,
		Burst:             c.API.Burst,
		UserAgent:         c.API.UserAgent,
	}
}

// BreakerSettings returns the circuit breaker settings.
func (c *Config) BreakerSettings() algoapi.BreakerConfig {
	b := c.API.Breaker
	return algoapi.BreakerConfig{
		Name:        "algorithm-service",
		MaxRequests: b.MaxRequests,
		Interval:    b.Interval,
		Timeout:     b.Timeout,
		MinRequests: b.MinRequests,
		FailureRate: b.FailureRate,
	}
}

// LoggingSettings returns the logger configuration.
func (c *Config) LoggingSettings() logging.Config {
	out := logging.DefaultConfig()
	out.Level = c.Logging.Level
	if c.Logging.Format != "" {
		out.Format = c.Logging.Format
	}
	out.Caller = c.Logging.Caller
	return out
}

// NATSSettings returns the event fan-out configuration.
func (c *Config) NATSSettings() events.NATSConfig {
	n := c.Events.NATS
	return events.NATSConfig{
		URL:           n.URL,
		Embedded:      n.EmbeddedServer,
		EmbeddedPort:  n.EmbeddedPort,
		MaxReconnects: n.MaxReconnects,
		ReconnectWait: n.ReconnectWait,
	}
}

// BusSettings returns the event bus configuration.
func (c *Config) BusSettings() events.Config {
	return events.Config{BufferSize: c.Events.BufferSize}
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/cinegraph/config.yaml",
	"/etc/cinegraph/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// Default Algorithm Service locations.
const (
	DefaultCatalogURL    = "http://localhost:8080/api/peliculas"
	DefaultAlgorithmsURL = "http://localhost:8080/api/algoritmos"
)

// DefaultGenreMix is the genre list sent to genre-mix variants when the
// request carries none.
var DefaultGenreMix = []string{"Ciencia Ficción", "Drama", "Thriller"}

// DefaultGenreOptions are the genres offered to renderers for filtering.
var DefaultGenreOptions = []string{"Ciencia Ficción", "Thriller", "Acción", "Drama", "Crimen", "Misterio"}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		API: APIConfig{
			CatalogURL:    DefaultCatalogURL,
			AlgorithmsURL: DefaultAlgorithmsURL,
			Timeout:       30 * time.Second,
			InfoTimeout:   3 * time.Second,
			MaxBodyBytes:  8 << 20,
			UserAgent:     "cinegraph",
			Breaker: BreakerConfig{
				Enabled:     true,
				MaxRequests: 3,
				Interval:    time.Minute,
				Timeout:     2 * time.Minute,
				MinRequests: 10,
				FailureRate: 0.6,
			},
		},
		Selection: SelectionConfig{
			MarathonMinutes: 300,
			ExactMinutes:    240,
			DPMinutes:       360,
			BBMinutes:       360,
			Depth:           3,
			Limit:           15,
			TopN:            5,
			Minimum:         3,
			CombinationSize: 3,
			GenreMix:        append([]string(nil), DefaultGenreMix...),
			GenreOptions:    append([]string(nil), DefaultGenreOptions...),
		},
		Status: StatusConfig{
			TTL: 3 * time.Second,
		},
		Server: ServerConfig{
			Port:            3857,
			Host:            "0.0.0.0",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"http://localhost:3000"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Events: EventsConfig{
			BufferSize: 64,
			NATS: NATSConfig{
				Enabled:        false,
				URL:            "nats://127.0.0.1:4222",
				EmbeddedServer: true,
				EmbeddedPort:   4222,
				MaxReconnects:  -1,
				ReconnectWait:  2 * time.Second,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration using Koanf with layered sources:
//  1. Struct defaults
//  2. Config file (CONFIG_PATH, then DefaultConfigPaths)
//  3. Legacy environment variables (NEXT_PUBLIC_API_URL, NEXT_PUBLIC_API_ALG)
//  4. Environment variables (highest priority)
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: legacy names lose to the primary ones loaded after them
	if err := k.Load(env.Provider("", ".", legacyEnvTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load legacy environment variables: %w", err)
	}

	// Layer 4: Load environment variables
	// CATALOG_API_URL -> api.catalog_url
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}
	if err := processMillisecondFields(k); err != nil {
		return nil, fmt.Errorf("failed to process duration fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are the keys that accept comma-separated env values.
var sliceConfigPaths = []string{
	"selection.genre_mix",
	"selection.genre_options",
	"security.cors_origins",
}

// processSliceFields splits comma-separated strings into slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// Already a slice (YAML or defaults)
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// millisecondConfigPaths are durations that also accept bare milliseconds.
var millisecondConfigPaths = []string{
	"status.ttl",
}

// processMillisecondFields rewrites bare integers ("3000", 3000) as
// millisecond durations before unmarshalling.
func processMillisecondFields(k *koanf.Koanf) error {
	for _, path := range millisecondConfigPaths {
		var ms int64
		switch v := k.Get(path).(type) {
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				continue
			}
			ms = n
		case int:
			ms = int64(v)
		case int64:
			ms = v
		case float64:
			ms = int64(v)
		default:
			continue
		}
		if err := k.Set(path, (time.Duration(ms) * time.Millisecond).String()); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// legacyEnvMappings maps the names used by earlier front ends.
var legacyEnvMappings = map[string]string{
	"next_public_api_url": "api.catalog_url",
	"next_public_api_alg": "api.algorithms_url",
}

func legacyEnvTransformFunc(key string) string {
	return legacyEnvMappings[strings.ToLower(key)]
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Algorithm Service
	"catalog_api_url":         "api.catalog_url",
	"algorithm_api_url":       "api.algorithms_url",
	"api_timeout":             "api.timeout",
	"api_info_timeout":        "api.info_timeout",
	"api_max_body_bytes":      "api.max_body_bytes",
	"api_requests_per_second": "api.requests_per_second",
	"api_burst":               "api.burst",
	"api_user_agent":          "api.user_agent",

	// Circuit breaker
	"breaker_enabled":      "api.breaker.enabled",
	"breaker_max_requests": "api.breaker.max_requests",
	"breaker_interval":     "api.breaker.interval",
	"breaker_timeout":      "api.breaker.timeout",
	"breaker_min_requests": "api.breaker.min_requests",
	"breaker_failure_rate": "api.breaker.failure_rate",

	// Selection defaults
	"default_marathon_minutes": "selection.marathon_minutes",
	"default_exact_minutes":    "selection.exact_minutes",
	"default_dp_minutes":       "selection.dp_minutes",
	"default_bb_minutes":       "selection.bb_minutes",
	"default_depth":            "selection.depth",
	"default_limit":            "selection.limit",
	"default_top_n":            "selection.top_n",
	"default_minimum":          "selection.minimum",
	"default_combination_size": "selection.combination_size",
	"default_genre_mix":        "selection.genre_mix",
	"genres":                   "selection.genre_options",

	// Status slot
	"status_ttl": "status.ttl",

	// Server mappings
	"http_port":        "server.port",
	"http_host":        "server.host",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"idle_timeout":     "server.idle_timeout",
	"shutdown_timeout": "server.shutdown_timeout",

	// Security mappings
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Events
	"events_buffer_size":  "events.buffer_size",
	"nats_enabled":        "events.nats.enabled",
	"nats_url":            "events.nats.url",
	"nats_embedded":       "events.nats.embedded_server",
	"nats_embedded_port":  "events.nats.embedded_port",
	"nats_max_reconnects": "events.nats.max_reconnects",
	"nats_reconnect_wait": "events.nats.reconnect_wait",

	// Logging mappings
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable to a koanf path.
// Unmapped keys return "" so unrelated variables never reach the config.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

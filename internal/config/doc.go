// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package config provides centralized configuration management for Cinegraph.

Configuration is layered with koanf: struct defaults, then an optional YAML
file, then legacy environment names, then the primary environment names.
Later layers win.

# Configuration Sources

  - Defaults (defaultConfig)
  - YAML file: CONFIG_PATH, else config.yaml, config.yml, /etc/cinegraph/config.yaml
  - NEXT_PUBLIC_API_URL / NEXT_PUBLIC_API_ALG (legacy names for the service roots)
  - Environment variables listed below

# Environment Variables

Algorithm Service (APIConfig):
  - CATALOG_API_URL: catalog root (default: http://localhost:8080/api/peliculas)
  - ALGORITHM_API_URL: algorithms root (default: http://localhost:8080/api/algoritmos)
  - API_TIMEOUT: whole-exchange timeout (default: 30s)
  - API_REQUESTS_PER_SECOND, API_BURST: outbound pacing (default: unlimited)
  - BREAKER_ENABLED, BREAKER_FAILURE_RATE, BREAKER_TIMEOUT: circuit breaker

Selection defaults (SelectionConfig):
  - DEFAULT_MARATHON_MINUTES (300), DEFAULT_EXACT_MINUTES (240)
  - DEFAULT_DP_MINUTES (360), DEFAULT_BB_MINUTES (360)
  - DEFAULT_DEPTH (3), DEFAULT_LIMIT (15), DEFAULT_TOP_N (5)
  - DEFAULT_MINIMUM (3), DEFAULT_COMBINATION_SIZE (3)
  - DEFAULT_GENRE_MIX: comma-separated (Ciencia Ficción,Drama,Thriller)
  - GENRES: comma-separated genre options offered to renderers

Status slot:
  - STATUS_TTL: "3s" or bare milliseconds "3000" (default: 3s)

Server and security:
  - HTTP_HOST (0.0.0.0), HTTP_PORT (3857)
  - CORS_ORIGINS: comma-separated; "*" allows any origin
  - RATE_LIMIT_REQUESTS (100), RATE_LIMIT_WINDOW (1m), DISABLE_RATE_LIMIT

Events:
  - EVENTS_BUFFER_SIZE (64)
  - NATS_ENABLED, NATS_URL, NATS_EMBEDDED, NATS_EMBEDDED_PORT (nats build tag)

Logging:
  - LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - LOG_FORMAT: json, console (default: json)
  - LOG_CALLER: include caller file:line

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}
	client, err := algoapi.NewClient(cfg.ClientConfig())

Config is immutable after Load and safe for concurrent reads.
*/
package config

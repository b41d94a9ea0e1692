// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package events

import "time"

// NATSConfig configures the optional NATS fan-out.
type NATSConfig struct {
	URL           string
	Embedded      bool
	EmbeddedPort  int
	MaxReconnects int
	ReconnectWait time.Duration
}

// DefaultNATSConfig returns settings for a local NATS server.
func DefaultNATSConfig() NATSConfig {
	return NATSConfig{
		URL:           "nats://127.0.0.1:4222",
		EmbeddedPort:  4222,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}
}

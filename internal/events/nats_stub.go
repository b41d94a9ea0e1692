// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

//go:build !nats

package events

import (
	"errors"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// NATSAvailable reports whether the binary was built with NATS support.
const NATSAvailable = false

// ErrNATSUnavailable is returned when NATS fan-out is requested from a
// binary built without -tags=nats.
var ErrNATSUnavailable = errors.New("NATS fan-out not available: build with -tags=nats")

// NATSForwarder is a stub when NATS dependencies are not compiled in.
type NATSForwarder struct{}

// NewNATSForwarder always fails without the nats build tag.
func NewNATSForwarder(cfg NATSConfig, logger watermill.LoggerAdapter) (*NATSForwarder, error) {
	return nil, ErrNATSUnavailable
}

// Publish always fails without the nats build tag.
func (f *NATSForwarder) Publish(topic string, msgs ...*message.Message) error {
	return ErrNATSUnavailable
}

// ClientURL returns an empty string for the stub.
func (f *NATSForwarder) ClientURL() string {
	return ""
}

// Close is a no-op stub.
func (f *NATSForwarder) Close() error {
	return nil
}

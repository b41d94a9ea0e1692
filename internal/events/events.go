// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package events is the in-process event bus for renderer-visible state.
//
// Every change to the current result, the status slot or the busy flag is
// published as an Event on a watermill gochannel topic. The websocket bridge
// consumes those topics and pushes the payloads to connected renderers. With
// the nats build tag the same messages can also be fanned out to a NATS
// server for external observers.
package events

import (
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// Event types. Each maps to its own topic.
const (
	TypeResult = "result"
	TypeStatus = "status"
	TypeBusy   = "busy"
)

// TopicPrefix is prepended to every event type to form a topic name.
const TopicPrefix = "cinegraph."

// ErrBusClosed is returned by operations on a closed bus.
var ErrBusClosed = errors.New("event bus closed")

// AllTypes lists every event type the bus carries.
func AllTypes() []string {
	return []string{TypeResult, TypeStatus, TypeBusy}
}

// Topic returns the topic for an event type.
func Topic(eventType string) string {
	return TopicPrefix + eventType
}

// Event is the payload of every bus message and every websocket frame.
type Event struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// BusyState is the data of a busy event.
type BusyState struct {
	Busy     bool  `json:"busy"`
	InFlight int64 `json:"in_flight"`
}

// Encode serializes an event envelope.
func Encode(eventType string, data interface{}) ([]byte, error) {
	return json.Marshal(Event{Type: eventType, Data: data, Timestamp: time.Now().UTC()})
}

// DecodedEvent is an Event whose data has not been interpreted yet.
type DecodedEvent struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// Decode parses a payload produced by Encode.
func Decode(payload []byte) (DecodedEvent, error) {
	var e DecodedEvent
	err := json.Unmarshal(payload, &e)
	return e, err
}

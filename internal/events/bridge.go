// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package events

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/cinegraph/internal/logging"
)

// Broadcaster sends raw JSON frames to every connected renderer.
type Broadcaster interface {
	BroadcastRaw(data []byte)
}

// Bridge forwards every bus event to a Broadcaster. It implements the
// suture.Service interface.
type Bridge struct {
	bus    *Bus
	target Broadcaster

	forwarded atomic.Int64
}

// NewBridge creates a bridge from bus to target.
func NewBridge(bus *Bus, target Broadcaster) *Bridge {
	return &Bridge{bus: bus, target: target}
}

// Serve subscribes to every event type and forwards until ctx is done.
func (br *Bridge) Serve(ctx context.Context) error {
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	merged := make(chan *message.Message)
	for _, t := range AllTypes() {
		ch, err := br.bus.Subscribe(subCtx, t)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", t, err)
		}
		go func(ch <-chan *message.Message) {
			for msg := range ch {
				select {
				case merged <- msg:
				case <-subCtx.Done():
					msg.Nack()
					return
				}
			}
		}(ch)
	}

	logging.Debug().Msg("Event bridge started")
	for {
		select {
		case <-ctx.Done():
			logging.Debug().Int64("forwarded", br.forwarded.Load()).Msg("Event bridge stopped")
			return ctx.Err()
		case msg := <-merged:
			br.target.BroadcastRaw(msg.Payload)
			msg.Ack()
			br.forwarded.Add(1)
		}
	}
}

// Forwarded returns the number of events delivered to the broadcaster.
func (br *Bridge) Forwarded() int64 {
	return br.forwarded.Load()
}

// String names the service in supervisor logs.
func (br *Bridge) String() string {
	return "event-bridge"
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package events

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/results"
	"github.com/tomtom215/cinegraph/internal/status"
)

// MetadataCorrelationID carries the originating correlation id, if any.
const MetadataCorrelationID = "correlation_id"

// Config holds bus settings.
type Config struct {
	// BufferSize is the per-subscriber output channel capacity.
	BufferSize int64
}

// DefaultConfig returns the bus defaults.
func DefaultConfig() Config {
	return Config{BufferSize: 64}
}

// Bus is a watermill gochannel pub/sub with optional forwarders.
type Bus struct {
	pubsub *gochannel.GoChannel
	logger watermill.LoggerAdapter

	mu         sync.RWMutex
	forwarders []message.Publisher
	closed     bool
}

// NewBus creates an in-process bus. A nil logger uses the zerolog adapter.
func NewBus(cfg Config, logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = NewLoggerAdapter()
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	return &Bus{
		pubsub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer:            cfg.BufferSize,
			BlockPublishUntilSubscriberAck: false,
		}, logger),
		logger: logger,
	}
}

// AddForwarder registers an additional publisher that receives a copy of
// every message. Forwarder failures are logged and never fail the publish.
func (b *Bus) AddForwarder(p message.Publisher) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.forwarders = append(b.forwarders, p)
}

// Publish encodes data as an Event of eventType and publishes it.
func (b *Bus) Publish(ctx context.Context, eventType string, data interface{}) error {
	payload, err := Encode(eventType, data)
	if err != nil {
		return fmt.Errorf("encode %s event: %w", eventType, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set(MetadataCorrelationID, id)
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return ErrBusClosed
	}

	topic := Topic(eventType)
	if err := b.pubsub.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	metrics.EventsPublished.WithLabelValues(topic).Inc()

	for _, f := range b.forwarders {
		if err := f.Publish(topic, msg.Copy()); err != nil {
			b.logger.Error("Forwarding event failed", err, watermill.LogFields{"topic": topic})
		}
	}
	return nil
}

// Subscribe returns the message stream for eventType. The channel closes
// when ctx is done or the bus is closed. Receivers must Ack each message.
func (b *Bus) Subscribe(ctx context.Context, eventType string) (<-chan *message.Message, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, ErrBusClosed
	}
	return b.pubsub.Subscribe(ctx, Topic(eventType))
}

// Attach publishes every result, status and busy change of the given
// sources. It must be called before the sources start producing.
func (b *Bus) Attach(projection *results.Projection, slot *status.Channel) {
	if projection != nil {
		projection.OnResult(func(r *models.AlgorithmResult) {
			b.publishLogged(TypeResult, r)
		})
		projection.OnBusy(func(busy bool) {
			b.publishLogged(TypeBusy, BusyState{Busy: busy, InFlight: projection.InFlight()})
		})
	}
	if slot != nil {
		slot.Subscribe(func(n *models.Notification) {
			b.publishLogged(TypeStatus, n)
		})
	}
}

func (b *Bus) publishLogged(eventType string, data interface{}) {
	if err := b.Publish(context.Background(), eventType, data); err != nil && err != ErrBusClosed {
		logging.Warn().Err(err).Str("type", eventType).Msg("Event publish failed")
	}
}

// Close shuts the bus and its forwarders down.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true

	var firstErr error
	for _, f := range b.forwarders {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if err := b.pubsub.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

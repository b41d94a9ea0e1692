// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

//go:build nats

package events

import (
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
)

// NATSAvailable reports whether the binary was built with NATS support.
const NATSAvailable = true

// NATSForwarder publishes bus messages to NATS core subjects named after
// the bus topics. With Embedded set it also runs an in-process server.
type NATSForwarder struct {
	publisher message.Publisher
	server    *server.Server
	url       string
}

// NewNATSForwarder connects to cfg.URL, or starts an embedded server first
// when cfg.Embedded is set.
func NewNATSForwarder(cfg NATSConfig, logger watermill.LoggerAdapter) (*NATSForwarder, error) {
	if logger == nil {
		logger = NewLoggerAdapter()
	}

	f := &NATSForwarder{url: cfg.URL}
	if cfg.Embedded {
		ns, err := server.NewServer(&server.Options{
			ServerName: "cinegraph-events",
			Host:       "127.0.0.1",
			Port:       cfg.EmbeddedPort,
			NoLog:      true,
			NoSigs:     true,
		})
		if err != nil {
			return nil, fmt.Errorf("create NATS server: %w", err)
		}
		go ns.Start()
		if !ns.ReadyForConnections(10 * time.Second) {
			ns.Shutdown()
			return nil, fmt.Errorf("NATS server not ready within timeout")
		}
		f.server = ns
		f.url = ns.ClientURL()
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL: f.url,
		NatsOptions: []natsgo.Option{
			natsgo.Name("cinegraph"),
			natsgo.RetryOnFailedConnect(true),
			natsgo.MaxReconnects(cfg.MaxReconnects),
			natsgo.ReconnectWait(cfg.ReconnectWait),
			natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
				if err != nil {
					logger.Error("NATS disconnected", err, nil)
				}
			}),
			natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
				logger.Info("NATS reconnected", watermill.LogFields{"url": nc.ConnectedUrl()})
			}),
		},
		Marshaler: &wmNats.NATSMarshaler{},
		JetStream: wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		if f.server != nil {
			f.server.Shutdown()
		}
		return nil, fmt.Errorf("create watermill NATS publisher: %w", err)
	}
	f.publisher = pub
	return f, nil
}

// Publish implements message.Publisher.
func (f *NATSForwarder) Publish(topic string, msgs ...*message.Message) error {
	return f.publisher.Publish(topic, msgs...)
}

// ClientURL is the server the forwarder publishes to.
func (f *NATSForwarder) ClientURL() string {
	return f.url
}

// Close stops the publisher and the embedded server, if any.
func (f *NATSForwarder) Close() error {
	err := f.publisher.Close()
	if f.server != nil {
		f.server.Shutdown()
		f.server.WaitForShutdown()
	}
	return err
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

//go:build nats

package events

import (
	"context"
	"testing"
	"time"

	natsgo "github.com/nats-io/nats.go"
)

func TestNATSForwarderEmbedded(t *testing.T) {
	cfg := DefaultNATSConfig()
	cfg.Embedded = true
	cfg.EmbeddedPort = -1

	fwd, err := NewNATSForwarder(cfg, nil)
	if err != nil {
		t.Fatalf("NewNATSForwarder: %v", err)
	}

	nc, err := natsgo.Connect(fwd.ClientURL())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer nc.Close()

	sub, err := nc.SubscribeSync(Topic(TypeResult))
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := nc.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	bus := NewBus(DefaultConfig(), nil)
	bus.AddForwarder(fwd)
	defer bus.Close()

	if err := bus.Publish(context.Background(), TypeResult, map[string]string{"title": "Todas las Películas"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msg, err := sub.NextMsg(2 * time.Second)
	if err != nil {
		t.Fatalf("NextMsg: %v", err)
	}
	ev, err := Decode(msg.Data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ev.Type != TypeResult {
		t.Errorf("type = %s", ev.Type)
	}
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/results"
	"github.com/tomtom215/cinegraph/internal/status"
)

func receive(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestPublishSubscribe(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultConfig(), nil)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := bus.Subscribe(ctx, TypeStatus)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	pubCtx := logging.ContextWithCorrelationID(context.Background(), "abc12345")
	if err := bus.Publish(pubCtx, TypeStatus, map[string]string{"message": "hola"}); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	msg := receive(t, ch)
	if got := msg.Metadata.Get(MetadataCorrelationID); got != "abc12345" {
		t.Errorf("correlation id = %q", got)
	}
	ev, err := Decode(msg.Payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if ev.Type != TypeStatus || string(ev.Data) != `{"message":"hola"}` || ev.Timestamp.IsZero() {
		t.Errorf("unexpected event %+v (%s)", ev, ev.Data)
	}
}

func TestAttachPublishesStateChanges(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultConfig(), nil)
	defer bus.Close()

	projection := results.New()
	slot := status.New(time.Hour)
	defer slot.Stop()
	bus.Attach(projection, slot)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	resultCh, _ := bus.Subscribe(ctx, TypeResult)
	busyCh, _ := bus.Subscribe(ctx, TypeBusy)
	statusCh, _ := bus.Subscribe(ctx, TypeStatus)

	ticket := projection.Begin()
	ticket.Apply(models.NewAlgorithmResult("Recomendación Greedy", models.TagGreedy, []models.Movie{{ID: 1, Title: "Alien"}}, nil))
	ticket.Done()
	slot.Publish("Error al ejecutar algoritmo", models.KindError)

	ev, _ := Decode(receive(t, resultCh).Payload)
	var r models.AlgorithmResult
	if err := json.Unmarshal(ev.Data, &r); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if r.Title != "Recomendación Greedy" || len(r.Movies) != 1 || r.Generation != 1 {
		t.Errorf("unexpected result event %+v", r)
	}

	seen := map[bool]bool{}
	for i := 0; i < 2; i++ {
		ev, _ := Decode(receive(t, busyCh).Payload)
		var b BusyState
		if err := json.Unmarshal(ev.Data, &b); err != nil {
			t.Fatalf("decode busy: %v", err)
		}
		seen[b.Busy] = true
	}
	if !seen[true] || !seen[false] {
		t.Errorf("expected busy on and off events, got %v", seen)
	}

	ev, _ = Decode(receive(t, statusCh).Payload)
	var n models.Notification
	if err := json.Unmarshal(ev.Data, &n); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if n.Message != "Error al ejecutar algoritmo" || n.Kind != models.KindError {
		t.Errorf("unexpected status event %+v", n)
	}
}

func TestClearedStatusPublishesNull(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultConfig(), nil)
	defer bus.Close()
	slot := status.New(time.Hour)
	defer slot.Stop()
	bus.Attach(nil, slot)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, _ := bus.Subscribe(ctx, TypeStatus)

	slot.Publish("x", models.KindInfo)
	receive(t, ch)
	slot.Clear()

	ev, _ := Decode(receive(t, ch).Payload)
	if string(ev.Data) != "null" {
		t.Errorf("expected null data for cleared status, got %s", ev.Data)
	}
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
	closed bool
	err    error
}

func (p *recordingPublisher) Publish(topic string, msgs ...*message.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for range msgs {
		p.topics = append(p.topics, topic)
	}
	return p.err
}

func (p *recordingPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func TestForwarders(t *testing.T) {
	t.Parallel()

	bus := NewBus(DefaultConfig(), nil)
	ok := &recordingPublisher{}
	failing := &recordingPublisher{err: errors.New("nats down")}
	bus.AddForwarder(failing)
	bus.AddForwarder(ok)

	if err := bus.Publish(context.Background(), TypeBusy, BusyState{Busy: true, InFlight: 1}); err != nil {
		t.Fatalf("expected forwarder failure to be swallowed, got %v", err)
	}
	if len(ok.topics) != 1 || ok.topics[0] != "cinegraph.busy" {
		t.Errorf("unexpected forwarded topics %v", ok.topics)
	}

	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !ok.closed || !failing.closed {
		t.Error("expected forwarders closed with the bus")
	}
}

func TestClosedBus(t *testing.T) {
	t.Parallel()

	bus := NewBus(Config{}, nil)
	if err := bus.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if err := bus.Publish(context.Background(), TypeResult, nil); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Publish after close = %v", err)
	}
	if _, err := bus.Subscribe(context.Background(), TypeResult); !errors.Is(err, ErrBusClosed) {
		t.Errorf("Subscribe after close = %v", err)
	}
}

func TestTopics(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		TypeResult: "cinegraph.result",
		TypeStatus: "cinegraph.status",
		TypeBusy:   "cinegraph.busy",
	}
	for _, typ := range AllTypes() {
		if Topic(typ) != want[typ] {
			t.Errorf("Topic(%s) = %s", typ, Topic(typ))
		}
	}
}

func TestNATSStubOrForwarder(t *testing.T) {
	t.Parallel()

	if NATSAvailable {
		t.Skip("covered by nats_test.go")
	}
	if _, err := NewNATSForwarder(DefaultNATSConfig(), nil); err == nil {
		t.Error("expected error without nats build tag")
	}
}

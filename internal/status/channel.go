// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package status implements the single-slot, auto-clearing status message.
//
// The channel owns exactly one expiry timer. Every Publish stops the previous
// timer and arms a new one stamped with a fresh generation, and an expiry only
// clears the slot if its generation is still current. A message published
// 2.9s after another therefore stays visible for its own full TTL.
package status

import (
	"sync"
	"time"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/models"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3000 * time.Millisecond

// Stopper is the subset of *time.Timer the channel needs.
type Stopper interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc satisfies it through a wrapper.
type AfterFunc func(d time.Duration, f func()) Stopper

// Listener receives the new slot content; nil means the slot was cleared.
type Listener func(n *models.Notification)

// Option configures a Channel.
type Option func(*Channel)

// WithClock overrides the time source and timer factory.
func WithClock(now func() time.Time, after AfterFunc) Option {
	return func(c *Channel) {
		if now != nil {
			c.now = now
		}
		if after != nil {
			c.afterFunc = after
		}
	}
}

// Channel holds at most one notification.
type Channel struct {
	ttl       time.Duration
	now       func() time.Time
	afterFunc AfterFunc

	mu         sync.Mutex
	current    *models.Notification
	timer      Stopper
	generation uint64
	listeners  []Listener

	// notifyMu keeps listener delivery in mutation order.
	notifyMu sync.Mutex
}

// New creates a channel. A non-positive ttl selects DefaultTTL.
func New(ttl time.Duration, opts ...Option) *Channel {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Channel{
		ttl: ttl,
		now: time.Now,
		afterFunc: func(d time.Duration, f func()) Stopper {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe registers a listener for slot changes.
func (c *Channel) Subscribe(l Listener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, l)
}

// TTL returns the configured visibility window.
func (c *Channel) TTL() time.Duration {
	return c.ttl
}

// Publish replaces whatever is shown with message and restarts the expiry timer.
func (c *Channel) Publish(message string, kind models.NotificationKind) {
	now := c.now()
	n := &models.Notification{
		Message:     message,
		Kind:        kind,
		PublishedAt: now,
		ExpiresAt:   now.Add(c.ttl),
	}

	c.mu.Lock()
	c.generation++
	gen := c.generation
	if c.timer != nil {
		c.timer.Stop()
	}
	c.current = n
	c.timer = c.afterFunc(c.ttl, func() { c.expire(gen) })
	c.deliverLocked(n)

	metrics.StatusNotifications.WithLabelValues(string(kind)).Inc()
	logging.Debug().Str("kind", string(kind)).Str("status", message).Msg("Status published")
}

// Current returns a copy of the visible notification, or nil.
func (c *Channel) Current() *models.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	cp := *c.current
	return &cp
}

// Clear removes the visible notification immediately.
func (c *Channel) Clear() {
	c.mu.Lock()
	if c.current == nil {
		c.mu.Unlock()
		return
	}
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = nil
	c.deliverLocked(nil)
}

// Stop cancels any pending expiry without clearing the slot.
func (c *Channel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Channel) expire(gen uint64) {
	c.mu.Lock()
	if gen != c.generation || c.current == nil {
		c.mu.Unlock()
		return
	}
	c.current = nil
	c.timer = nil
	c.deliverLocked(nil)
}

// deliverLocked is entered with mu held and releases it before calling
// listeners, holding notifyMu across the handoff.
func (c *Channel) deliverLocked(n *models.Notification) {
	listeners := c.listeners
	c.notifyMu.Lock()
	c.mu.Unlock()
	defer c.notifyMu.Unlock()

	for _, l := range listeners {
		if n == nil {
			l(nil)
			continue
		}
		cp := *n
		l(&cp)
	}
}

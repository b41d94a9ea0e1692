// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package models

import "time"

// NotificationKind classifies a status message.
type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
	KindInfo    NotificationKind = "info"
)

// Notification is the transient message shown in the status slot.
type Notification struct {
	Message     string           `json:"message"`
	Kind        NotificationKind `json:"kind"`
	PublishedAt time.Time        `json:"published_at"`
	ExpiresAt   time.Time        `json:"expires_at"`
}

// StatusSnapshot is the status slot plus the busy flag, as seen by renderers.
type StatusSnapshot struct {
	Notification *Notification `json:"notification"`
	Busy         bool          `json:"busy"`
	InFlight     int64         `json:"in_flight"`
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"net/http"

	"github.com/tomtom215/cinegraph/internal/events"
	"github.com/tomtom215/cinegraph/internal/logging"
	ws "github.com/tomtom215/cinegraph/internal/websocket"
)

// WebSocket upgrades the connection and registers a hub client. The client
// receives the greeting snapshot, then every result, status and busy event.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, CodeUnavailable, "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error().Err(err).Msg("WebSocket upgrade error")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	h.wsHub.Register <- client
	client.Start()
}

// Greeting is the snapshot a new websocket client starts from: the current
// result when there is one, then the status slot and the busy flag.
func (h *Handler) Greeting() []ws.Message {
	msgs := make([]ws.Message, 0, 3)
	if current := h.projection.Current(); current != nil {
		msgs = append(msgs, ws.Message{Type: ws.MessageTypeResult, Data: current})
	}

	snap := h.statusSnapshot()
	msgs = append(msgs,
		ws.Message{Type: ws.MessageTypeStatus, Data: snap.Notification},
		ws.Message{Type: ws.MessageTypeBusy, Data: events.BusyState{Busy: snap.Busy, InFlight: snap.InFlight}},
	)
	return msgs
}

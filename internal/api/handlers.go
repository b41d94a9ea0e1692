// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/cinegraph/internal/catalog"
	"github.com/tomtom215/cinegraph/internal/dispatch"
	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/results"
	"github.com/tomtom215/cinegraph/internal/status"
	ws "github.com/tomtom215/cinegraph/internal/websocket"
)

// InfoSource returns the Algorithm Service's algorithm descriptions.
// algoapi.Client and algoapi.CircuitBreakerClient satisfy it.
type InfoSource interface {
	Info(ctx context.Context) (map[string]string, error)
}

// Dependencies are the components the handlers read from and drive.
// Info and Hub are optional.
type Dependencies struct {
	Dispatcher *dispatch.Dispatcher
	Catalog    *catalog.Store
	Projection *results.Projection
	Status     *status.Channel
	Info       InfoSource
	Hub        *ws.Hub

	// Genres are the genre options offered to renderers.
	Genres []string

	// AllowedOrigins gates websocket upgrades. "*" allows any origin.
	AllowedOrigins []string

	// InfoTimeout bounds the backend description lookup. Zero means 3s.
	InfoTimeout time.Duration
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across files:
//   - handlers.go: Handler struct, constructor, websocket upgrader (this file)
//   - handlers_helpers.go: envelope and body helpers
//   - handlers_health.go: liveness and readiness
//   - handlers_catalog.go: catalog browsing and reload
//   - handlers_algorithms.go: algorithm listing, dispatch, filter, result and status
//   - handlers_websocket.go: websocket upgrade and greeting
type Handler struct {
	dispatcher     *dispatch.Dispatcher
	catalog        *catalog.Store
	projection     *results.Projection
	status         *status.Channel
	info           InfoSource
	wsHub          *ws.Hub
	genres         []string
	allowedOrigins []string
	infoTimeout    time.Duration
	startTime      time.Time
}

// NewHandler creates a new API handler. When a hub is given, its greeting is
// set to the current snapshot so new websocket clients start in sync.
func NewHandler(deps Dependencies) *Handler {
	infoTimeout := deps.InfoTimeout
	if infoTimeout <= 0 {
		infoTimeout = 3 * time.Second
	}

	genres := make([]string, len(deps.Genres))
	copy(genres, deps.Genres)

	h := &Handler{
		dispatcher:     deps.Dispatcher,
		catalog:        deps.Catalog,
		projection:     deps.Projection,
		status:         deps.Status,
		info:           deps.Info,
		wsHub:          deps.Hub,
		genres:         genres,
		allowedOrigins: deps.AllowedOrigins,
		infoTimeout:    infoTimeout,
		startTime:      time.Now(),
	}

	if h.wsHub != nil {
		h.wsHub.SetGreeting(h.Greeting)
	}
	return h
}

// getUpgrader creates a WebSocket upgrader with origin checking and a handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin; an empty one would bypass CORS.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness probe requests.
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	}, time.Now())
}

// HealthReady handles readiness probe requests.
// Ready means the catalog has been loaded at least once; every selection
// and the default view depend on it.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.catalog == nil || !h.catalog.Loaded() {
		respondError(w, http.StatusServiceUnavailable, CodeUnavailable, "Catalog not loaded", nil)
		return
	}

	data := map[string]interface{}{
		"ready":     true,
		"movies":    h.catalog.Len(),
		"loaded_at": h.catalog.LoadedAt(),
	}
	if h.wsHub != nil {
		data["websocket_clients"] = h.wsHub.GetClientCount()
	}
	respondData(w, http.StatusOK, data, start)
}

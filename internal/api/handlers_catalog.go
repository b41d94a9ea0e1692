// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/registry"
)

// CatalogResponse is the movie list plus snapshot information.
type CatalogResponse struct {
	Movies   []models.Movie `json:"movies"`
	Count    int            `json:"count"`
	LoadedAt time.Time      `json:"loaded_at"`
}

// GenresResponse lists the configured genre options and the genres actually
// present in the catalog.
type GenresResponse struct {
	Options []string `json:"options"`
	Catalog []string `json:"catalog"`
}

// Catalog returns every movie in the current snapshot.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	movies := h.catalog.All()
	respondData(w, http.StatusOK, CatalogResponse{
		Movies:   movies,
		Count:    len(movies),
		LoadedAt: h.catalog.LoadedAt(),
	}, start)
}

// Genres returns the selectable genres.
func (h *Handler) Genres(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	respondData(w, http.StatusOK, GenresResponse{
		Options: h.genres,
		Catalog: h.catalog.Genres(),
	}, start)
}

// Movie returns one catalog movie by id.
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, http.StatusBadRequest, CodeValidationError, "id must be a positive integer", nil)
		return
	}

	movie, found := h.catalog.ByID(id)
	if !found {
		respondError(w, http.StatusNotFound, CodeNotFound, "Película no encontrada", nil)
		return
	}
	respondData(w, http.StatusOK, movie, start)
}

// ReloadCatalog refetches the catalog. On success the current result becomes
// the full catalog; on failure the previous snapshot stays in place.
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// The reload updates shared state, so it completes even if the caller leaves.
	if err := h.catalog.LoadAll(context.WithoutCancel(r.Context())); err != nil {
		respondError(w, http.StatusBadGateway, CodeUpstreamError, registry.MsgCatalogLoadFailed, err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"count":     h.catalog.Len(),
		"loaded_at": h.catalog.LoadedAt(),
	}, start)
}

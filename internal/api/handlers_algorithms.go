// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/registry"
)

// AlgorithmsResponse lists every runnable variant. Descriptions come from
// the Algorithm Service and are omitted when it cannot be reached.
type AlgorithmsResponse struct {
	Algorithms       []registry.Summary `json:"algorithms"`
	Defaults         models.Selection   `json:"defaults"`
	Descriptions     map[string]string  `json:"descriptions,omitempty"`
	BackendReachable bool               `json:"backend_reachable"`
}

// FilterRequest is the body of POST /filter.
type FilterRequest struct {
	Genre string `json:"genre" validate:"omitempty,genre"`
}

// Algorithms lists the registry.
func (h *Handler) Algorithms(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	resp := AlgorithmsResponse{
		Algorithms: h.dispatcher.Registry().Summaries(),
		Defaults:   h.dispatcher.Defaults(),
	}

	if h.info != nil {
		ctx, cancel := context.WithTimeout(r.Context(), h.infoTimeout)
		defer cancel()
		descriptions, err := h.info.Info(ctx)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("Algorithm descriptions unavailable")
		} else {
			resp.Descriptions = descriptions
			resp.BackendReachable = true
		}
	}

	respondData(w, http.StatusOK, resp, start)
}

// Dispatch runs one algorithm variant. The body is an optional Selection;
// budgets it leaves unset take the configured defaults.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	variant := registry.Variant(chi.URLParam(r, "variant"))

	var sel models.Selection
	if apiErr := decodeJSONBody(w, r, &sel); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	if apiErr := validateRequest(&sel); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	// The result lands in the shared projection, so the run completes even
	// if this caller disconnects.
	outcome, err := h.dispatcher.Dispatch(context.WithoutCancel(r.Context()), variant, sel)
	if err != nil {
		h.respondDispatchError(w, variant, err)
		return
	}
	respondData(w, http.StatusOK, outcome, start)
}

// Filter shows every movie of one genre. A blank genre does nothing and
// answers 204.
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req FilterRequest
	if apiErr := decodeJSONBody(w, r, &req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}
	req.Genre = strings.TrimSpace(req.Genre)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return
	}

	outcome, err := h.dispatcher.FilterByGenre(context.WithoutCancel(r.Context()), req.Genre)
	if err != nil {
		h.respondDispatchError(w, registry.VariantGenreFilter, err)
		return
	}
	if outcome == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondData(w, http.StatusOK, outcome, start)
}

// Result returns the current result, or null before the first one.
func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.projection.Current(), time.Now())
}

// Status returns the status slot and the busy flag.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, h.statusSnapshot(), time.Now())
}

func (h *Handler) statusSnapshot() models.StatusSnapshot {
	snap := models.StatusSnapshot{
		Busy:     h.projection.Busy(),
		InFlight: h.projection.InFlight(),
	}
	if h.status != nil {
		snap.Notification = h.status.Current()
	}
	return snap
}

// respondDispatchError maps the dispatch error taxonomy onto HTTP.
func (h *Handler) respondDispatchError(w http.ResponseWriter, variant registry.Variant, err error) {
	var selErr *registry.SelectionError
	switch {
	case errors.As(err, &selErr):
		respondAPIError(w, http.StatusUnprocessableEntity, &models.APIError{
			Code:    CodeInvalidSelection,
			Message: selErr.Message,
			Details: map[string]interface{}{"field": string(selErr.Field)},
		}, nil)
	case errors.Is(err, registry.ErrUnknownVariant):
		respondAPIError(w, http.StatusNotFound, &models.APIError{
			Code:    CodeUnknownVariant,
			Message: registry.MsgUnknownAlgorithm,
			Details: map[string]interface{}{"variant": sanitizeLogValue(string(variant))},
		}, nil)
	default:
		respondError(w, http.StatusBadGateway, CodeUpstreamError, h.failureMessage(variant), err)
	}
}

func (h *Handler) failureMessage(variant registry.Variant) string {
	if desc, err := h.dispatcher.Registry().Lookup(variant); err == nil {
		return desc.Failure()
	}
	return registry.MsgAlgorithmFailed
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package dispatch runs one algorithm request end to end.
//
// A dispatch looks the variant up in the registry, validates the selection,
// marks the projection busy, calls the Algorithm Service, normalizes the
// response and applies the result. Busy is cleared on every path, including
// a panicking normalizer. Failures are reported through the status slot and
// never touch the current result.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/registry"
	"github.com/tomtom215/cinegraph/internal/results"
)

// Fetcher executes a resolved request and returns the raw body.
type Fetcher interface {
	Do(ctx context.Context, req models.Request) ([]byte, error)
}

// Notifier receives user-facing status messages.
type Notifier interface {
	Publish(message string, kind models.NotificationKind)
}

// Outcome is what a completed dispatch produced. Applied is false when a
// newer result had already replaced the current one.
type Outcome struct {
	Result  *models.AlgorithmResult `json:"result"`
	Applied bool                    `json:"applied"`
}

// Dispatcher executes registry variants against the Algorithm Service.
type Dispatcher struct {
	registry   *registry.Registry
	fetcher    Fetcher
	titles     registry.TitleLookup
	notifier   Notifier
	projection *results.Projection
	defaults   models.Selection
}

// New creates a dispatcher. defaults fill any budget the caller leaves unset.
func New(reg *registry.Registry, fetcher Fetcher, titles registry.TitleLookup, notifier Notifier, projection *results.Projection, defaults models.Selection) *Dispatcher {
	return &Dispatcher{
		registry:   reg,
		fetcher:    fetcher,
		titles:     titles,
		notifier:   notifier,
		projection: projection,
		defaults:   defaults,
	}
}

// Defaults returns a copy of the selection defaults applied to every dispatch.
func (d *Dispatcher) Defaults() models.Selection {
	return models.Selection{}.WithDefaults(d.defaults)
}

// Registry exposes the descriptor table.
func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

// Dispatch runs variant with sel.
func (d *Dispatcher) Dispatch(ctx context.Context, variant registry.Variant, sel models.Selection) (*Outcome, error) {
	start := time.Now()
	ctx = logging.ContextWithNewCorrelationID(ctx)
	log := logging.Ctx(ctx).With().Str("variant", string(variant)).Logger()

	desc, err := d.registry.Lookup(variant)
	if err != nil {
		d.publish(registry.MsgUnknownAlgorithm, models.KindError)
		metrics.RecordDispatch(string(variant), "unknown", time.Since(start))
		log.Warn().Msg("Dispatch of unknown variant")
		return nil, err
	}

	// Only absent fields are defaulted; an explicit 0 or empty genre list
	// reaches validation as given.
	sel = sel.WithDefaults(d.defaults)
	req, err := desc.BuildRequest(sel)
	if err != nil {
		var selErr *registry.SelectionError
		if errors.As(err, &selErr) {
			d.publish(selErr.Message, models.KindError)
			metrics.RecordDispatch(string(variant), "invalid", time.Since(start))
			log.Debug().Str("field", string(selErr.Field)).Msg("Dispatch rejected: missing selection")
			return nil, err
		}
		d.publish(desc.Failure(), models.KindError)
		metrics.RecordDispatch(string(variant), "failed", time.Since(start))
		log.Error().Err(err).Msg("Dispatch request could not be built")
		return nil, err
	}

	ticket := d.projection.Begin()
	defer ticket.Done()

	log.Debug().
		Str("method", req.Method).
		Str("url", req.URL).
		Uint64("generation", ticket.Generation()).
		Msg("Dispatch started")

	normalized, err := d.execute(ctx, desc, req)
	if err != nil {
		d.publish(desc.Failure(), models.KindError)
		metrics.RecordDispatch(string(variant), "failed", time.Since(start))
		log.Error().Err(err).Str("url", req.URL).Msg("Dispatch failed")
		return nil, fmt.Errorf("%s: %w", variant, err)
	}

	result := models.NewAlgorithmResult(desc.TitleFor(sel, d.titles), desc.Tag, normalized.Movies, normalized.Metadata)
	result.Variant = string(variant)

	applied := ticket.Apply(result)
	outcome := "applied"
	if !applied {
		outcome = "superseded"
	} else if desc.SuccessMessage != "" {
		d.publish(desc.SuccessMessage, models.KindSuccess)
	}
	metrics.RecordDispatch(string(variant), outcome, time.Since(start))

	log.Info().
		Str("algorithm", string(desc.Tag)).
		Int("movies", len(result.Movies)).
		Bool("applied", applied).
		Dur("elapsed", time.Since(start)).
		Msg("Dispatch completed")

	return &Outcome{Result: result, Applied: applied}, nil
}

// FilterByGenre shows every movie of genre. A blank genre does nothing.
func (d *Dispatcher) FilterByGenre(ctx context.Context, genre string) (*Outcome, error) {
	if registry.NormalizeGenre(genre) == "" {
		return nil, nil
	}
	return d.Dispatch(ctx, registry.VariantGenreFilter, models.Selection{Genre: genre})
}

// execute fetches and normalizes, converting a normalizer panic into an error.
func (d *Dispatcher) execute(ctx context.Context, desc *registry.Descriptor, req models.Request) (n registry.Normalized, err error) {
	raw, err := d.fetcher.Do(ctx, req)
	if err != nil {
		return registry.Normalized{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			n = registry.Normalized{}
			err = fmt.Errorf("%w: normalizer panic: %v", registry.ErrMalformedResponse, r)
		}
	}()
	return desc.Normalize(raw)
}

func (d *Dispatcher) publish(message string, kind models.NotificationKind) {
	if d.notifier != nil {
		d.notifier.Publish(message, kind)
	}
}

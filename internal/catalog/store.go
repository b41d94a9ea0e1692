// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package catalog holds the in-memory movie catalog.
//
// The catalog is replaced wholesale on every load. Readers always see either
// the previous or the new snapshot, never a mix, and a failed load leaves the
// previous snapshot in place.
package catalog

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/metrics"
	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/registry"
	"github.com/tomtom215/cinegraph/internal/results"
)

// Fetcher executes a request against the Algorithm Service.
type Fetcher interface {
	Do(ctx context.Context, req models.Request) ([]byte, error)
}

// Notifier receives user-facing status messages.
type Notifier interface {
	Publish(message string, kind models.NotificationKind)
}

type snapshot struct {
	movies   []models.Movie
	byID     map[int64]int
	genres   []string
	loadedAt time.Time
}

// Store is the catalog snapshot plus the dependencies needed to reload it.
type Store struct {
	url        string
	fetcher    Fetcher
	notifier   Notifier
	projection *results.Projection

	snap atomic.Pointer[snapshot]
}

// NewStore creates an empty store that loads from catalogURL.
func NewStore(catalogURL string, fetcher Fetcher, notifier Notifier, projection *results.Projection) *Store {
	s := &Store{
		url:        strings.TrimSuffix(catalogURL, "/"),
		fetcher:    fetcher,
		notifier:   notifier,
		projection: projection,
	}
	s.snap.Store(newSnapshot(nil, time.Time{}))
	return s
}

func newSnapshot(movies []models.Movie, loadedAt time.Time) *snapshot {
	if movies == nil {
		movies = []models.Movie{}
	}
	snap := &snapshot{
		movies:   movies,
		byID:     make(map[int64]int, len(movies)),
		loadedAt: loadedAt,
	}
	seenGenre := make(map[string]struct{})
	for i := range movies {
		if _, dup := snap.byID[movies[i].ID]; !dup {
			snap.byID[movies[i].ID] = i
		}
		for _, g := range movies[i].Genres {
			if _, dup := seenGenre[g]; !dup {
				seenGenre[g] = struct{}{}
				snap.genres = append(snap.genres, g)
			}
		}
	}
	return snap
}

// LoadAll fetches the full catalog and replaces the snapshot. On success the
// current result becomes the whole catalog under the browse tag. On failure
// the error is published to the status slot and both the snapshot and the
// current result are left untouched.
func (s *Store) LoadAll(ctx context.Context) error {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	ticket := s.projection.Begin()
	defer ticket.Done()

	start := time.Now()
	raw, err := s.fetcher.Do(ctx, models.Request{Method: http.MethodGet, URL: s.url})
	if err == nil {
		var n registry.Normalized
		n, err = registry.NormalizeDirectList(raw)
		if err == nil {
			s.Replace(n.Movies)
			metrics.CatalogLoads.WithLabelValues("success").Inc()
			logging.Ctx(ctx).Info().
				Int("movies", len(n.Movies)).
				Dur("elapsed", time.Since(start)).
				Msg("Catalog loaded")

			ticket.Apply(models.NewAlgorithmResult(registry.MsgCatalogTitle, models.TagBrowse, s.All(), nil))
			return nil
		}
	}

	metrics.CatalogLoads.WithLabelValues("failure").Inc()
	logging.Ctx(ctx).Error().Err(err).Str("url", s.url).Msg("Catalog load failed")
	if s.notifier != nil {
		s.notifier.Publish(registry.MsgCatalogLoadFailed, models.KindError)
	}
	return fmt.Errorf("loading catalog: %w", err)
}

// Replace swaps in a new catalog. The slice is copied.
func (s *Store) Replace(movies []models.Movie) {
	cp := make([]models.Movie, len(movies))
	copy(cp, movies)
	s.snap.Store(newSnapshot(cp, time.Now()))
	metrics.CatalogSize.Set(float64(len(cp)))
}

// All returns a copy of the catalog in service order.
func (s *Store) All() []models.Movie {
	snap := s.snap.Load()
	out := make([]models.Movie, len(snap.movies))
	copy(out, snap.movies)
	return out
}

// Len returns the number of movies in the snapshot.
func (s *Store) Len() int {
	return len(s.snap.Load().movies)
}

// ByID returns the movie with id, if present.
func (s *Store) ByID(id int64) (models.Movie, bool) {
	snap := s.snap.Load()
	i, ok := snap.byID[id]
	if !ok {
		return models.Movie{}, false
	}
	return snap.movies[i], true
}

// TitleFor returns the movie title, or a placeholder for unknown ids.
func (s *Store) TitleFor(id int64) string {
	if m, ok := s.ByID(id); ok && m.Title != "" {
		return m.Title
	}
	return registry.PlaceholderTitle(id)
}

// Genres lists distinct genre names in first-seen order.
func (s *Store) Genres() []string {
	snap := s.snap.Load()
	out := make([]string, len(snap.genres))
	copy(out, snap.genres)
	return out
}

// LoadedAt is the time of the last successful load, zero if none.
func (s *Store) LoadedAt() time.Time {
	return s.snap.Load().loadedAt
}

// Loaded reports whether at least one load succeeded.
func (s *Store) Loaded() bool {
	return !s.LoadedAt().IsZero()
}

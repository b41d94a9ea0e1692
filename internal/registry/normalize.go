// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package registry

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinegraph/internal/algoapi"
	"github.com/tomtom215/cinegraph/internal/models"
)

// Shape is the response layout an algorithm returns.
type Shape int

const (
	// ShapeDirectList is a JSON array of movies. A single object is
	// treated as a one-element list.
	ShapeDirectList Shape = iota

	// ShapeWrappedMetrics is an object holding peliculasOptimas plus
	// scalar score fields.
	ShapeWrappedMetrics

	// ShapeCandidateList is a list of alternative movie lists; the
	// first one is shown.
	ShapeCandidateList

	// ShapeEdgeList is a spanning tree: weighted edges between movies.
	ShapeEdgeList
)

func (s Shape) String() string {
	switch s {
	case ShapeDirectList:
		return "direct-list"
	case ShapeWrappedMetrics:
		return "wrapped-with-metrics"
	case ShapeCandidateList:
		return "candidate-list"
	case ShapeEdgeList:
		return "edge-list"
	default:
		return "unknown"
	}
}

// Wire keys of the wrapped and edge-list shapes.
const (
	keyOptimalMovies = "peliculasOptimas"
	keyEdges         = "aristas"
	keyEdgeCount     = "numeroAristas"
	keyTotalWeight   = "pesoTotal"
)

// Normalized is the algorithm-independent part of a result.
type Normalized struct {
	Movies   []models.Movie
	Metadata map[string]interface{}
}

// Normalizer turns a raw response body into a Normalized value.
type Normalizer func(raw []byte) (Normalized, error)

// normalizerFor returns the strategy for s.
func normalizerFor(s Shape) Normalizer {
	switch s {
	case ShapeWrappedMetrics:
		return NormalizeWrappedMetrics
	case ShapeCandidateList:
		return NormalizeCandidateList
	case ShapeEdgeList:
		return NormalizeEdgeList
	default:
		return NormalizeDirectList
	}
}

// NormalizeDirectList passes a movie array through in order.
func NormalizeDirectList(raw []byte) (Normalized, error) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return Normalized{Movies: []models.Movie{}}, nil
	}

	switch raw[0] {
	case '[':
		var list []algoapi.Pelicula
		if err := json.Unmarshal(raw, &list); err != nil {
			return Normalized{}, fmt.Errorf("%w: movie list: %v", ErrMalformedResponse, err)
		}
		return Normalized{Movies: algoapi.ToMovies(list)}, nil
	case '{':
		var single algoapi.Pelicula
		if err := json.Unmarshal(raw, &single); err != nil {
			return Normalized{}, fmt.Errorf("%w: movie: %v", ErrMalformedResponse, err)
		}
		return Normalized{Movies: []models.Movie{single.ToMovie()}}, nil
	default:
		return Normalized{}, fmt.Errorf("%w: expected movie list, got %s", ErrMalformedResponse, preview(raw))
	}
}

// NormalizeWrappedMetrics extracts peliculasOptimas and copies every other
// present scalar field into metadata under its own wire name. Absent and
// null fields are left out rather than zero-filled.
func NormalizeWrappedMetrics(raw []byte) (Normalized, error) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return Normalized{Movies: []models.Movie{}}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Normalized{}, fmt.Errorf("%w: wrapped result: %v", ErrMalformedResponse, err)
	}

	movies := []models.Movie{}
	if list, ok := fields[keyOptimalMovies]; ok && !isNull(bytes.TrimSpace(list)) {
		var wire []algoapi.Pelicula
		if err := json.Unmarshal(list, &wire); err != nil {
			return Normalized{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, keyOptimalMovies, err)
		}
		movies = algoapi.ToMovies(wire)
	}

	return Normalized{Movies: movies, Metadata: scalarFields(fields, keyOptimalMovies)}, nil
}

// NormalizeCandidateList shows the first candidate list and discards the rest.
func NormalizeCandidateList(raw []byte) (Normalized, error) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return Normalized{Movies: []models.Movie{}}, nil
	}

	var candidates [][]algoapi.Pelicula
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return Normalized{}, fmt.Errorf("%w: candidate lists: %v", ErrMalformedResponse, err)
	}
	if len(candidates) == 0 {
		return Normalized{Movies: []models.Movie{}}, nil
	}
	return Normalized{Movies: algoapi.ToMovies(candidates[0])}, nil
}

// NormalizeEdgeList turns a spanning tree into its distinct endpoint movies,
// in order of first appearance (origin before destination, edge by edge).
// The tree aggregates are carried verbatim when the service sent them; for a
// bare edge array the edge count and total weight are derived.
func NormalizeEdgeList(raw []byte) (Normalized, error) {
	raw = bytes.TrimSpace(raw)
	if isNull(raw) {
		return Normalized{Movies: []models.Movie{}}, nil
	}

	var edges []algoapi.Arista
	var metadata map[string]interface{}

	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &edges); err != nil {
			return Normalized{}, fmt.Errorf("%w: edge list: %v", ErrMalformedResponse, err)
		}
		total := 0.0
		for i := range edges {
			total += edges[i].Peso
		}
		metadata = map[string]interface{}{
			keyEdgeCount:   int64(len(edges)),
			keyTotalWeight: total,
		}
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return Normalized{}, fmt.Errorf("%w: spanning tree: %v", ErrMalformedResponse, err)
		}
		if list, ok := fields[keyEdges]; ok && !isNull(bytes.TrimSpace(list)) {
			if err := json.Unmarshal(list, &edges); err != nil {
				return Normalized{}, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, keyEdges, err)
			}
		}
		metadata = scalarFields(fields, keyEdges)
	default:
		return Normalized{}, fmt.Errorf("%w: expected edge list, got %s", ErrMalformedResponse, preview(raw))
	}

	movies := make([]models.Movie, 0, len(edges)+1)
	seen := make(map[int64]struct{}, len(edges)+1)
	add := func(p *algoapi.Pelicula) {
		if p == nil {
			return
		}
		if _, dup := seen[p.PeliculaID]; dup {
			return
		}
		seen[p.PeliculaID] = struct{}{}
		movies = append(movies, p.ToMovie())
	}
	for i := range edges {
		add(edges[i].Origen)
		add(edges[i].Destino)
	}

	return Normalized{Movies: movies, Metadata: metadata}, nil
}

// scalarFields copies every non-null string, number or boolean field except
// skip. It returns nil when nothing qualifies.
func scalarFields(fields map[string]json.RawMessage, skip string) map[string]interface{} {
	var out map[string]interface{}
	for key, value := range fields {
		if key == skip {
			continue
		}
		v, ok := scalar(bytes.TrimSpace(value))
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]interface{})
		}
		out[key] = v
	}
	return out
}

// scalar decodes a JSON string, number or boolean. Integral numbers become
// int64 so counts survive re-encoding unchanged.
func scalar(raw []byte) (interface{}, bool) {
	if len(raw) == 0 || isNull(raw) {
		return nil, false
	}
	switch c := raw[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, false
		}
		return s, true
	case c == 't' || c == 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, false
		}
		return b, true
	case c == '-' || (c >= '0' && c <= '9'):
		text := string(raw)
		if !bytes.ContainsAny(raw, ".eE") {
			if n, err := strconv.ParseInt(text, 10, 64); err == nil {
				return n, true
			}
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, false
		}
		return f, true
	default:
		return nil, false
	}
}

func isNull(raw []byte) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func preview(raw []byte) string {
	const n = 32
	if len(raw) > n {
		return strconv.Quote(string(raw[:n]) + "...")
	}
	return strconv.Quote(string(raw))
}

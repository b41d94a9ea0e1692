// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package registry

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tomtom215/cinegraph/internal/models"
)

// Field names one user selection a descriptor can consume. Path templates
// refer to fields as {field}.
type Field string

const (
	FieldMovieID         Field = "movie_id"
	FieldStartID         Field = "start_id"
	FieldEndID           Field = "end_id"
	FieldMarathonMinutes Field = "marathon_minutes"
	FieldExactMinutes    Field = "exact_minutes"
	FieldDPMinutes       Field = "dp_minutes"
	FieldBBMinutes       Field = "bb_minutes"
	FieldGenres          Field = "genres"
	FieldGenre           Field = "genre"
	FieldDepth           Field = "depth"
	FieldLimit           Field = "limit"
	FieldTopN            Field = "top_n"
	FieldMinimum         Field = "minimum"
	FieldCombinationSize Field = "combination_size"
)

// intValue returns the numeric selection for f.
func (f Field) intValue(sel *models.Selection) (int64, bool) {
	switch f {
	case FieldMovieID:
		return sel.MovieID, true
	case FieldStartID:
		return sel.StartID, true
	case FieldEndID:
		return sel.EndID, true
	case FieldMarathonMinutes:
		return int64(models.IntValue(sel.MarathonMinutes)), true
	case FieldExactMinutes:
		return int64(models.IntValue(sel.ExactMinutes)), true
	case FieldDPMinutes:
		return int64(models.IntValue(sel.DPMinutes)), true
	case FieldBBMinutes:
		return int64(models.IntValue(sel.BBMinutes)), true
	case FieldDepth:
		return int64(models.IntValue(sel.Depth)), true
	case FieldLimit:
		return int64(models.IntValue(sel.Limit)), true
	case FieldTopN:
		return int64(models.IntValue(sel.TopN)), true
	case FieldMinimum:
		return int64(models.IntValue(sel.Minimum)), true
	case FieldCombinationSize:
		return int64(models.IntValue(sel.CombinationSize)), true
	default:
		return 0, false
	}
}

// format renders f as a path segment or query value.
func (f Field) format(sel *models.Selection) string {
	if f == FieldGenre {
		return NormalizeGenre(sel.Genre)
	}
	v, _ := f.intValue(sel)
	return strconv.FormatInt(v, 10)
}

// missingMessage is the status text shown when f is absent or out of range.
func (f Field) missingMessage() string {
	switch f {
	case FieldMovieID:
		return MsgSelectMovie
	case FieldStartID, FieldEndID:
		return MsgSelectBothMovies
	case FieldMarathonMinutes, FieldExactMinutes, FieldDPMinutes, FieldBBMinutes:
		return MsgInvalidMinutes
	case FieldGenres:
		return MsgSelectGenres
	case FieldGenre:
		return MsgSelectGenre
	case FieldDepth, FieldLimit:
		return MsgInvalidTraversal
	default:
		return MsgInvalidCount
	}
}

// present reports whether sel carries a usable value for f.
func (f Field) present(sel *models.Selection) bool {
	switch f {
	case FieldGenre:
		return NormalizeGenre(sel.Genre) != ""
	case FieldGenres:
		return len(cleanGenres(sel.Genres)) > 0
	default:
		v, ok := f.intValue(sel)
		return ok && v > 0
	}
}

// NormalizeGenre trims and NFC-normalizes a genre name so that
// "Ciencia Ficción" typed with a combining accent matches the catalog.
func NormalizeGenre(genre string) string {
	return norm.NFC.String(strings.TrimSpace(genre))
}

// cleanGenres drops blanks and duplicates, keeping first-seen order.
func cleanGenres(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		g = NormalizeGenre(g)
		if g == "" {
			continue
		}
		if _, dup := seen[g]; dup {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestNewAlgorithmResultNeverNilMovies(t *testing.T) {
	t.Parallel()

	r := NewAlgorithmResult("Empty", TagGreedy, nil, map[string]interface{}{})
	if r.Movies == nil {
		t.Fatal("expected non-nil movies")
	}
	if r.Metadata != nil {
		t.Errorf("expected empty metadata to collapse to nil, got %v", r.Metadata)
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"movies":[]`) {
		t.Errorf("expected empty movies array in JSON, got %s", data)
	}
	if strings.Contains(string(data), `"metadata"`) {
		t.Errorf("expected metadata omitted, got %s", data)
	}
}

func TestAlgorithmTagValid(t *testing.T) {
	t.Parallel()

	if len(AllTags) != 13 {
		t.Errorf("expected 13 tags, got %d", len(AllTags))
	}
	for _, tag := range AllTags {
		if !tag.Valid() {
			t.Errorf("expected %q to be valid", tag)
		}
	}
	if AlgorithmTag("bogo-sort").Valid() {
		t.Error("expected unknown tag to be invalid")
	}
}

func TestSelectionWithDefaults(t *testing.T) {
	t.Parallel()

	defaults := Selection{
		MarathonMinutes: Int(300),
		ExactMinutes:    Int(240),
		DPMinutes:       Int(360),
		BBMinutes:       Int(360),
		Depth:           Int(3),
		Limit:           Int(15),
		Genres:          []string{"Drama"},
	}

	got := Selection{MovieID: 7, MarathonMinutes: Int(120)}.WithDefaults(defaults)

	if got.MovieID != 7 {
		t.Errorf("expected movie id preserved, got %d", got.MovieID)
	}
	if IntValue(got.MarathonMinutes) != 120 {
		t.Errorf("expected explicit marathon minutes kept, got %d", IntValue(got.MarathonMinutes))
	}
	if IntValue(got.ExactMinutes) != 240 || IntValue(got.DPMinutes) != 360 || IntValue(got.BBMinutes) != 360 {
		t.Errorf("expected budgets defaulted, got %+v", got)
	}
	if IntValue(got.Depth) != 3 || IntValue(got.Limit) != 15 {
		t.Errorf("expected traversal defaults, got depth=%d limit=%d", IntValue(got.Depth), IntValue(got.Limit))
	}
	if got.TopN != nil {
		t.Errorf("expected TopN to stay unset without a default, got %d", *got.TopN)
	}
	if len(got.Genres) != 1 || got.Genres[0] != "Drama" {
		t.Errorf("expected default genres, got %v", got.Genres)
	}

	got.Genres[0] = "Changed"
	*got.DPMinutes = 1
	if defaults.Genres[0] != "Drama" || *defaults.DPMinutes != 360 {
		t.Error("expected defaults to be copied, not shared")
	}
}

func TestSelectionWithDefaultsKeepsExplicitZero(t *testing.T) {
	t.Parallel()

	defaults := Selection{DPMinutes: Int(360), Depth: Int(3), Genres: []string{"Drama"}}
	got := Selection{DPMinutes: Int(0), Depth: Int(0), Genres: []string{}}.WithDefaults(defaults)

	if got.DPMinutes == nil || *got.DPMinutes != 0 {
		t.Errorf("DPMinutes = %v, want explicit 0", got.DPMinutes)
	}
	if got.Depth == nil || *got.Depth != 0 {
		t.Errorf("Depth = %v, want explicit 0", got.Depth)
	}
	if got.Genres == nil || len(got.Genres) != 0 {
		t.Errorf("Genres = %#v, want explicit empty list", got.Genres)
	}
}

func TestSelectionJSONDistinguishesAbsentFromZero(t *testing.T) {
	t.Parallel()

	var absent, zero Selection
	if err := json.Unmarshal([]byte(`{"movie_id":3}`), &absent); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := json.Unmarshal([]byte(`{"dp_minutes":0,"genres":[]}`), &zero); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if absent.DPMinutes != nil || absent.Genres != nil {
		t.Errorf("absent fields decoded as set: %+v", absent)
	}
	if zero.DPMinutes == nil || *zero.DPMinutes != 0 {
		t.Errorf("dp_minutes = %v, want explicit 0", zero.DPMinutes)
	}
	if zero.Genres == nil {
		t.Error("genres: [] decoded as unset")
	}
}

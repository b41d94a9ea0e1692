// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package models

// Movie is the canonical catalog record shown by every renderer.
// Values are immutable once fetched; collections hold copies.
type Movie struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Year     int      `json:"year"`
	Duration int      `json:"duration"`
	Rating   float64  `json:"rating"`
	Genres   []string `json:"genres"`
	Actors   []string `json:"actors,omitempty"`
}


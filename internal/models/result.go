// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package models

import "time"

// AlgorithmTag identifies which family of algorithm produced a result.
type AlgorithmTag string

// Closed set of result tags.
const (
	TagTraversalBFS       AlgorithmTag = "traversal-bfs"
	TagTraversalDFS       AlgorithmTag = "traversal-dfs"
	TagShortestPath       AlgorithmTag = "shortest-path"
	TagGreedy             AlgorithmTag = "greedy"
	TagQuicksort          AlgorithmTag = "quicksort"
	TagMergesort          AlgorithmTag = "mergesort"
	TagBacktracking       AlgorithmTag = "backtracking"
	TagDynamicProgramming AlgorithmTag = "dynamic-programming"
	TagMSTPrim            AlgorithmTag = "mst-prim"
	TagMSTKruskal         AlgorithmTag = "mst-kruskal"
	TagBranchAndBound     AlgorithmTag = "branch-and-bound"
	TagBrowse             AlgorithmTag = "browse"
	TagFilter             AlgorithmTag = "filter"
)

// AllTags lists every tag in presentation order.
var AllTags = []AlgorithmTag{
	TagTraversalBFS, TagTraversalDFS, TagShortestPath, TagGreedy,
	TagQuicksort, TagMergesort, TagBacktracking, TagDynamicProgramming,
	TagMSTPrim, TagMSTKruskal, TagBranchAndBound, TagBrowse, TagFilter,
}

// Valid reports whether t is one of the known tags.
func (t AlgorithmTag) Valid() bool {
	for _, known := range AllTags {
		if t == known {
			return true
		}
	}
	return false
}

// AlgorithmResult is the single canonical shape every algorithm response is
// normalized into. Movies is never nil. Metadata only holds keys the
// Algorithm Service actually returned.
type AlgorithmResult struct {
	Title       string                 `json:"title"`
	Algorithm   AlgorithmTag           `json:"algorithm"`
	Variant     string                 `json:"variant,omitempty"`
	Movies      []Movie                `json:"movies"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Generation  uint64                 `json:"generation"`
	CompletedAt time.Time              `json:"completed_at"`
}

// NewAlgorithmResult builds a result, substituting an empty slice for nil movies.
func NewAlgorithmResult(title string, tag AlgorithmTag, movies []Movie, metadata map[string]interface{}) *AlgorithmResult {
	if movies == nil {
		movies = []Movie{}
	}
	if len(metadata) == 0 {
		metadata = nil
	}
	return &AlgorithmResult{
		Title:     title,
		Algorithm: tag,
		Movies:    movies,
		Metadata:  metadata,
	}
}

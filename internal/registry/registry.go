// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package registry is the closed table of algorithm request descriptors.
//
// Each Variant maps to one Descriptor holding everything needed to call the
// Algorithm Service for that algorithm and to translate its response into
// the canonical AlgorithmResult. Adding an algorithm means adding a row to
// the table, never a new code path in the dispatcher.
package registry

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/cinegraph/internal/models"
)

// Endpoints are the two Algorithm Service roots.
type Endpoints struct {
	CatalogURL    string
	AlgorithmsURL string
}

// Registry resolves variants to descriptors.
type Registry struct {
	byVariant map[Variant]*Descriptor
	order     []Variant
}

// New builds the standard registry bound to endpoints.
func New(endpoints Endpoints) *Registry {
	return FromDescriptors(endpoints, standardDescriptors()...)
}

// FromDescriptors builds a registry from an explicit descriptor list.
// Later duplicates replace earlier ones.
func FromDescriptors(endpoints Endpoints, descriptors ...Descriptor) *Registry {
	catalog := strings.TrimSuffix(endpoints.CatalogURL, "/")
	algorithms := strings.TrimSuffix(endpoints.AlgorithmsURL, "/")

	r := &Registry{byVariant: make(map[Variant]*Descriptor, len(descriptors))}
	for i := range descriptors {
		d := descriptors[i]
		if d.API == APICatalog {
			d.base = catalog
		} else {
			d.base = algorithms
		}
		if _, exists := r.byVariant[d.Variant]; !exists {
			r.order = append(r.order, d.Variant)
		}
		r.byVariant[d.Variant] = &d
	}
	return r
}

// Lookup returns the descriptor for v or an error wrapping ErrUnknownVariant.
func (r *Registry) Lookup(v Variant) (*Descriptor, error) {
	d, ok := r.byVariant[v]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, v)
	}
	return d, nil
}

// Variants returns every registered variant in table order.
func (r *Registry) Variants() []Variant {
	out := make([]Variant, len(r.order))
	copy(out, r.order)
	return out
}

// Summary is a serializable view of a descriptor.
type Summary struct {
	Variant     Variant             `json:"variant"`
	Algorithm   models.AlgorithmTag `json:"algorithm"`
	Description string              `json:"description,omitempty"`
	API         string              `json:"api"`
	Method      string              `json:"method"`
	Route       string              `json:"route"`
	Query       []string            `json:"query,omitempty"`
	Requires    []Field             `json:"requires,omitempty"`
	Shape       string              `json:"shape"`
}

// Summaries lists every descriptor in table order.
func (r *Registry) Summaries() []Summary {
	out := make([]Summary, 0, len(r.order))
	for _, v := range r.order {
		d := r.byVariant[v]
		method := d.Method
		if method == "" {
			method = "GET"
		}
		out = append(out, Summary{
			Variant:     d.Variant,
			Algorithm:   d.Tag,
			Description: d.Description,
			API:         d.API.String(),
			Method:      method,
			Route:       d.RouteTemplate(),
			Query:       sortedKeys(d.Query),
			Requires:    d.Requires(),
			Shape:       d.Shape.String(),
		})
	}
	return out
}

func sortedKeys(m map[string]Field) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package registry

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinegraph/internal/models"
)

// API selects which Algorithm Service root a descriptor targets.
type API int

const (
	APICatalog API = iota
	APIAlgorithms
)

func (a API) String() string {
	if a == APICatalog {
		return "catalog"
	}
	return "algorithms"
}

// TitleLookup resolves a movie id to a display title. Unknown ids yield a
// placeholder rather than an error.
type TitleLookup interface {
	TitleFor(id int64) string
}

// Descriptor is the complete, data-only description of one algorithm
// variant: where to send the request, what it needs from the user, how to
// read the response and what to call the result.
type Descriptor struct {
	Variant     Variant
	Tag         models.AlgorithmTag
	Description string

	API    API
	Method string

	// Route is appended to the API root. {field} placeholders are replaced
	// with the escaped selection value.
	Route string

	// Query maps a wire parameter name to the selection field it carries.
	Query map[string]Field

	// GenresBody sends {"generos": [...]} from Selection.Genres.
	GenresBody bool

	// DistinctEndpoints rejects a start/end pair that names the same movie.
	DistinctEndpoints bool

	Shape Shape

	// Normalizer overrides the Shape default when set.
	Normalizer Normalizer

	// Title formats the result title for a selection.
	Title func(sel models.Selection, lookup TitleLookup) string

	// FailureMessage is published when the request or normalization fails.
	FailureMessage string

	// SuccessMessage, when set, is published after the result is applied.
	SuccessMessage string

	base string
}

// Requires lists the selection fields this descriptor needs, in the order
// they are validated.
func (d *Descriptor) Requires() []Field {
	var fields []Field
	seen := make(map[Field]struct{})
	add := func(f Field) {
		if _, dup := seen[f]; !dup {
			seen[f] = struct{}{}
			fields = append(fields, f)
		}
	}
	for _, f := range routeFields(d.Route) {
		add(f)
	}
	for _, name := range sortedKeys(d.Query) {
		add(d.Query[name])
	}
	if d.GenresBody {
		add(FieldGenres)
	}
	return fields
}

// Validate checks that every required selection is present.
func (d *Descriptor) Validate(sel models.Selection) error {
	for _, f := range d.Requires() {
		if !f.present(&sel) {
			return &SelectionError{Variant: d.Variant, Field: f, Message: f.missingMessage()}
		}
	}
	if d.DistinctEndpoints && sel.StartID == sel.EndID {
		return &SelectionError{Variant: d.Variant, Field: FieldEndID, Message: MsgDistinctMovies}
	}
	return nil
}

// BuildRequest validates sel and resolves the full request.
func (d *Descriptor) BuildRequest(sel models.Selection) (models.Request, error) {
	if err := d.Validate(sel); err != nil {
		return models.Request{}, err
	}

	path := d.Route
	for _, f := range routeFields(d.Route) {
		path = strings.ReplaceAll(path, "{"+string(f)+"}", url.PathEscape(f.format(&sel)))
	}

	target := d.base + path
	if len(d.Query) > 0 {
		q := url.Values{}
		for name, f := range d.Query {
			q.Set(name, f.format(&sel))
		}
		target += "?" + q.Encode()
	}

	method := d.Method
	if method == "" {
		method = http.MethodGet
	}

	req := models.Request{Method: method, URL: target}
	if d.GenresBody {
		body, err := json.Marshal(map[string][]string{"generos": cleanGenres(sel.Genres)})
		if err != nil {
			return models.Request{}, fmt.Errorf("encoding %s body: %w", d.Variant, err)
		}
		req.Body = body
	}
	return req, nil
}

// Normalize converts a raw response body into movies and metadata.
func (d *Descriptor) Normalize(raw []byte) (Normalized, error) {
	n := d.Normalizer
	if n == nil {
		n = normalizerFor(d.Shape)
	}
	out, err := n(raw)
	if err != nil {
		return Normalized{}, err
	}
	if out.Movies == nil {
		out.Movies = []models.Movie{}
	}
	return out, nil
}

// TitleFor formats the result title. Missing lookups fall back to placeholders.
func (d *Descriptor) TitleFor(sel models.Selection, lookup TitleLookup) string {
	if lookup == nil {
		lookup = placeholderLookup{}
	}
	if d.Title == nil {
		return string(d.Variant)
	}
	return d.Title(sel, lookup)
}

// Failure returns the message published when this variant fails.
func (d *Descriptor) Failure() string {
	if d.FailureMessage == "" {
		return MsgAlgorithmFailed
	}
	return d.FailureMessage
}

// RouteTemplate is the unresolved route, for listings.
func (d *Descriptor) RouteTemplate() string {
	return d.Route
}

type placeholderLookup struct{}

func (placeholderLookup) TitleFor(id int64) string {
	return PlaceholderTitle(id)
}

// PlaceholderTitle is shown for a movie id the catalog does not know.
func PlaceholderTitle(id int64) string {
	return fmt.Sprintf("%s%d", MsgUnknownMoviePrefix, id)
}

// routeFields returns the {field} placeholders in route, in order.
func routeFields(route string) []Field {
	var fields []Field
	for {
		start := strings.IndexByte(route, '{')
		if start < 0 {
			return fields
		}
		end := strings.IndexByte(route[start:], '}')
		if end < 0 {
			return fields
		}
		fields = append(fields, Field(route[start+1:start+end]))
		route = route[start+end+1:]
	}
}

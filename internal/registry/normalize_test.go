// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package registry

import (
	"errors"
	"testing"

	"github.com/tomtom215/cinegraph/internal/models"
)

const (
	movieA = `{"peliculaId":1,"titulo":"Alien","año":1979,"promedioRating":4.1,"duracion":117,"generos":[{"nombre":"Ciencia Ficción"}]}`
	movieB = `{"peliculaId":2,"titulo":"Blade Runner","año":1982,"promedioRating":4.0,"duracion":117,"generos":[{"nombre":"Ciencia Ficción"},{"nombre":"Thriller"}]}`
	movieC = `{"peliculaId":3,"titulo":"Heat","año":1995,"promedioRating":3.9,"duracion":170,"generos":[{"nombre":"Crimen"}]}`
)

func ids(movies []models.Movie) []int64 {
	out := make([]int64, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.ID)
	}
	return out
}

func checkIDs(t *testing.T, got []models.Movie, want ...int64) {
	t.Helper()
	if got == nil {
		t.Fatal("movies must never be nil")
	}
	g := ids(got)
	if len(g) != len(want) {
		t.Fatalf("ids = %v, want %v", g, want)
	}
	for i := range want {
		if g[i] != want[i] {
			t.Fatalf("ids = %v, want %v", g, want)
		}
	}
}

func TestNormalizeDirectList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []int64
	}{
		{"array keeps order", "[" + movieC + "," + movieA + "]", []int64{3, 1}},
		{"single object is wrapped", movieB, []int64{2}},
		{"empty array", "[]", nil},
		{"null", "null", nil},
		{"blank body", "  ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n, err := NormalizeDirectList([]byte(tt.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			checkIDs(t, n.Movies, tt.want...)
			if n.Metadata != nil {
				t.Errorf("expected no metadata, got %v", n.Metadata)
			}
		})
	}

	n, _ := NormalizeDirectList([]byte(movieB))
	m := n.Movies[0]
	if m.Title != "Blade Runner" || m.Year != 1982 || len(m.Genres) != 2 {
		t.Errorf("unexpected mapping %+v", m)
	}
}

func TestNormalizeWrappedMetricsCarriesOnlyPresentFields(t *testing.T) {
	t.Parallel()

	raw := `{"peliculasOptimas":[` + movieA + `,` + movieB + `],"puntuacionTotal":12.5}`
	n, err := NormalizeWrappedMetrics([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkIDs(t, n.Movies, 1, 2)

	// Metadata keys keep the service's field names verbatim, so the total
	// score lands under puntuacionTotal rather than a shortened puntuacion.
	if got := n.Metadata["puntuacionTotal"]; got != 12.5 {
		t.Errorf("puntuacionTotal = %v, want 12.5", got)
	}
	if _, ok := n.Metadata["tiempoTotal"]; ok {
		t.Error("absent tiempoTotal must not appear in metadata")
	}
	if len(n.Metadata) != 1 {
		t.Errorf("expected exactly one metadata key, got %v", n.Metadata)
	}
}

func TestNormalizeWrappedMetricsBranchAndBound(t *testing.T) {
	t.Parallel()

	raw := `{"peliculasOptimas":[` + movieC + `],"tiempoTotal":170,"puntuacionTotal":3.9,
		"ratioEficiencia":0.0229,"estrategia":"Branch & Bound","nodosExplorados":42,"nodosPodados":17,
		"detalle":null,"extra":{"ignored":true}}`
	n, err := NormalizeWrappedMetrics([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkIDs(t, n.Movies, 3)

	want := map[string]interface{}{
		"tiempoTotal":     int64(170),
		"puntuacionTotal": 3.9,
		"ratioEficiencia": 0.0229,
		"estrategia":      "Branch & Bound",
		"nodosExplorados": int64(42),
		"nodosPodados":    int64(17),
	}
	if len(n.Metadata) != len(want) {
		t.Fatalf("metadata = %v, want %v", n.Metadata, want)
	}
	for k, v := range want {
		if n.Metadata[k] != v {
			t.Errorf("metadata[%s] = %#v, want %#v", k, n.Metadata[k], v)
		}
	}
}

func TestNormalizeWrappedMetricsNullList(t *testing.T) {
	t.Parallel()

	n, err := NormalizeWrappedMetrics([]byte(`{"peliculasOptimas":null,"tiempoTotal":0}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkIDs(t, n.Movies)
	if n.Metadata["tiempoTotal"] != int64(0) {
		t.Errorf("expected explicit zero to be carried, got %v", n.Metadata)
	}
}

func TestNormalizeCandidateList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []int64
	}{
		{"first candidate shown", "[[" + movieA + "," + movieB + "],[" + movieC + "]]", []int64{1, 2}},
		{"empty outer list", "[]", nil},
		{"null", "null", nil},
		{"empty first candidate", "[[],[" + movieC + "]]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			n, err := NormalizeCandidateList([]byte(tt.raw))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			checkIDs(t, n.Movies, tt.want...)
		})
	}
}

func TestNormalizeEdgeListDeduplicatesEndpoints(t *testing.T) {
	t.Parallel()

	raw := `{"aristas":[
		{"origen":` + movieA + `,"destino":` + movieB + `,"peso":0.5,"generosComunes":1},
		{"origen":` + movieB + `,"destino":` + movieC + `,"peso":0.9,"generosComunes":0}
	],"pesoTotal":1.4,"numeroAristas":2,"numeroNodos":null,"algoritmo":"Kruskal"}`

	n, err := NormalizeEdgeList([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkIDs(t, n.Movies, 1, 2, 3)

	if n.Metadata["pesoTotal"] != 1.4 || n.Metadata["numeroAristas"] != int64(2) || n.Metadata["algoritmo"] != "Kruskal" {
		t.Errorf("unexpected metadata %v", n.Metadata)
	}
	if _, ok := n.Metadata["numeroNodos"]; ok {
		t.Error("null numeroNodos must be omitted")
	}
}

func TestNormalizeEdgeListBareArray(t *testing.T) {
	t.Parallel()

	raw := `[{"origen":` + movieC + `,"destino":` + movieA + `,"peso":0.25},{"origen":` + movieA + `,"destino":` + movieC + `,"peso":0.25}]`
	n, err := NormalizeEdgeList([]byte(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkIDs(t, n.Movies, 3, 1)
	if n.Metadata["numeroAristas"] != int64(2) || n.Metadata["pesoTotal"] != 0.5 {
		t.Errorf("unexpected derived metadata %v", n.Metadata)
	}
}

func TestNormalizersRejectMalformedBodies(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		fn   Normalizer
		raw  string
	}{
		{"direct list string", NormalizeDirectList, `"oops"`},
		{"direct list truncated", NormalizeDirectList, `[{"peliculaId":1`},
		{"wrapped array", NormalizeWrappedMetrics, `[1,2]`},
		{"wrapped bad list", NormalizeWrappedMetrics, `{"peliculasOptimas":"x"}`},
		{"candidate flat list", NormalizeCandidateList, `[` + movieA + `]`},
		{"edge list number", NormalizeEdgeList, `42`},
		{"edge list bad edges", NormalizeEdgeList, `{"aristas":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := tt.fn([]byte(tt.raw)); !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestDescriptorNormalizeUsesShape(t *testing.T) {
	t.Parallel()

	d := mustLookup(t, VariantExactMarathon)
	n, err := d.Normalize([]byte("[[" + movieC + "]]"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkIDs(t, n.Movies, 3)
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/registry"
)

const catalogJSON = `[
	{"peliculaId":1,"titulo":"Alien","año":1979,"promedioRating":8.5,"duracion":117,"generos":[{"nombre":"Ciencia Ficción"}]},
	{"peliculaId":2,"titulo":"Aliens","año":1986,"promedioRating":8.4,"duracion":137,"generos":[{"nombre":"Ciencia Ficción"},{"nombre":"Acción"}]},
	{"peliculaId":3,"titulo":"Heat","año":1995,"promedioRating":8.3,"duracion":170,"generos":[{"nombre":"Crimen"}]}
]`

// fakeAlgorithmService serves the catalog, a BFS route and one genre.
func fakeAlgorithmService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/peliculas", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catalogJSON))
	})
	mux.HandleFunc("/api/peliculas/1/bfs", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"peliculaId":2,"titulo":"Aliens","año":1986,"promedioRating":8.4,"duracion":137,"generos":[]}]`))
	})
	mux.HandleFunc("/api/peliculas/genero/Crimen", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"peliculaId":3,"titulo":"Heat","año":1995,"promedioRating":8.3,"duracion":170,"generos":[{"nombre":"Crimen"}]}]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func setupEnv(t *testing.T, baseURL string) {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("CATALOG_API_URL", baseURL+"/api/peliculas")
	t.Setenv("ALGORITHM_API_URL", baseURL+"/api/algoritmos")
	t.Setenv("LOG_LEVEL", "error")
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"variant", []string{"-variant", "bfs", "-movie", "1"}, false},
		{"list", []string{"-list"}, false},
		{"genre only", []string{"-genre", "Drama"}, false},
		{"nothing to do", nil, true},
		{"unknown flag", []string{"-bogus"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			_, err := parseFlags(tt.args, &stderr)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errUsage) {
				t.Errorf("err = %v, want errUsage", err)
			}
		})
	}
}

func TestCLIOptions_Selection(t *testing.T) {
	opts := cliOptions{movie: 4, minutes: 200, minutesSet: true, genres: " Drama, ,Crimen "}
	sel := opts.selection()

	if sel.MovieID != 4 {
		t.Errorf("MovieID = %d", sel.MovieID)
	}
	for _, budget := range []*int{sel.MarathonMinutes, sel.ExactMinutes, sel.DPMinutes, sel.BBMinutes} {
		if models.IntValue(budget) != 200 {
			t.Errorf("minutes not applied to every budget: %+v", sel)
		}
	}

	if unset := (cliOptions{}).selection(); unset.DPMinutes != nil || unset.Genres != nil {
		t.Errorf("absent flags should stay unset, got %+v", unset)
	}
	if len(sel.Genres) != 2 || sel.Genres[0] != "Drama" || sel.Genres[1] != "Crimen" {
		t.Errorf("Genres = %q", sel.Genres)
	}
}

func TestRun_List(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-list"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}
	out := stdout.String()
	for _, want := range []string{"VARIANT", "bfs", "genre-filter", "top-rated"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestRun_DispatchJSON(t *testing.T) {
	srv := fakeAlgorithmService(t)
	setupEnv(t, srv.URL)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-variant", "bfs", "-movie", "1", "-json"}, &stdout, &stderr)
	if err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}

	var result models.AlgorithmResult
	if err := json.Unmarshal(stdout.Bytes(), &result); err != nil {
		t.Fatalf("decode output: %v\n%s", err, stdout.String())
	}
	if result.Algorithm != models.TagTraversalBFS {
		t.Errorf("Algorithm = %q", result.Algorithm)
	}
	if !strings.Contains(result.Title, "Alien") {
		t.Errorf("Title = %q, want the selected movie's title", result.Title)
	}
	if len(result.Movies) != 1 || result.Movies[0].ID != 2 {
		t.Errorf("Movies = %+v", result.Movies)
	}
}

func TestRun_GenreFilterTable(t *testing.T) {
	srv := fakeAlgorithmService(t)
	setupEnv(t, srv.URL)

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-genre", "Crimen"}, &stdout, &stderr); err != nil {
		t.Fatalf("run: %v (stderr: %s)", err, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, "Heat") {
		t.Errorf("expected Heat in output:\n%s", out)
	}
	if !strings.Contains(out, "Género: Crimen") {
		t.Errorf("expected the filter title in output:\n%s", out)
	}
}

func TestParseFlags_ExplicitZeroMinutes(t *testing.T) {
	opts, err := parseFlags([]string{"-variant", "dp-optimal", "-minutes", "0"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	sel := opts.selection()
	if sel.DPMinutes == nil || *sel.DPMinutes != 0 {
		t.Errorf("DPMinutes = %v, want explicit 0", sel.DPMinutes)
	}
}

func TestRun_ZeroMinutesIsRejected(t *testing.T) {
	srv := fakeAlgorithmService(t)
	setupEnv(t, srv.URL)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-variant", "dp-optimal", "-minutes", "0"}, &stdout, &stderr)
	if !errors.Is(err, registry.ErrInvalidSelection) {
		t.Fatalf("expected ErrInvalidSelection, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Ingresa un tiempo válido en minutos") {
		t.Errorf("expected the minutes message on stderr, got %q", stderr.String())
	}
}

func TestRun_CatalogUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()
	setupEnv(t, srv.URL)

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-variant", "top-rated"}, &stdout, &stderr)
	if err == nil {
		t.Fatal("expected an error when the catalog cannot be loaded")
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	if !strings.Contains(stderr.String(), "[error]") {
		t.Errorf("expected the failure notification on stderr, got %q", stderr.String())
	}
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tomtom215/cinegraph/internal/models"
	"github.com/tomtom215/cinegraph/internal/registry"
	"github.com/tomtom215/cinegraph/internal/results"
)

const catalogJSON = `[
	{"peliculaId":1,"titulo":"Alien","año":1979,"promedioRating":4.1,"duracion":117,"generos":[{"nombre":"Ciencia Ficción"},{"nombre":"Thriller"}]},
	{"peliculaId":2,"titulo":"Heat","año":1995,"promedioRating":3.9,"duracion":170,"generos":[{"nombre":"Crimen"},{"nombre":"Thriller"}]}
]`

type fakeFetcher struct {
	mu    sync.Mutex
	body  []byte
	err   error
	calls []models.Request
}

func (f *fakeFetcher) Do(_ context.Context, req models.Request) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.body, f.err
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	kinds    []models.NotificationKind
}

func (n *recordingNotifier) Publish(message string, kind models.NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	n.kinds = append(n.kinds, kind)
}

func TestLoadAllReplacesCatalogAndShowsBrowseResult(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: []byte(catalogJSON)}
	projection := results.New()
	store := NewStore("http://svc/api/peliculas/", fetcher, &recordingNotifier{}, projection)

	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if fetcher.calls[0].URL != "http://svc/api/peliculas" || fetcher.calls[0].Method != "GET" {
		t.Errorf("unexpected request %+v", fetcher.calls[0])
	}
	if store.Len() != 2 || !store.Loaded() {
		t.Fatalf("expected 2 loaded movies, got %d", store.Len())
	}
	if m, ok := store.ByID(2); !ok || m.Title != "Heat" {
		t.Errorf("ByID(2) = %+v, %v", m, ok)
	}

	genres := store.Genres()
	want := []string{"Ciencia Ficción", "Thriller", "Crimen"}
	if len(genres) != len(want) {
		t.Fatalf("genres = %v, want %v", genres, want)
	}
	for i := range want {
		if genres[i] != want[i] {
			t.Errorf("genres = %v, want %v", genres, want)
		}
	}

	cur := projection.Current()
	if cur == nil || cur.Algorithm != models.TagBrowse || cur.Title != registry.MsgCatalogTitle || len(cur.Movies) != 2 {
		t.Fatalf("unexpected current result %+v", cur)
	}
	if projection.Busy() {
		t.Error("expected busy cleared after load")
	}
}

func TestLoadAllFailureKeepsPreviousContent(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: []byte(catalogJSON)}
	notifier := &recordingNotifier{}
	projection := results.New()
	store := NewStore("http://svc/api/peliculas", fetcher, notifier, projection)

	if err := store.LoadAll(context.Background()); err != nil {
		t.Fatalf("first LoadAll: %v", err)
	}
	before := projection.Current()

	fetcher.mu.Lock()
	fetcher.err = errors.New("connection refused")
	fetcher.mu.Unlock()

	if err := store.LoadAll(context.Background()); err == nil {
		t.Fatal("expected error from failed reload")
	}

	if store.Len() != 2 {
		t.Errorf("expected previous catalog kept, got %d movies", store.Len())
	}
	if projection.Current() != before {
		t.Error("expected current result untouched by failed reload")
	}
	if len(notifier.messages) != 1 || notifier.messages[0] != registry.MsgCatalogLoadFailed || notifier.kinds[0] != models.KindError {
		t.Errorf("unexpected notifications %v %v", notifier.messages, notifier.kinds)
	}
	if projection.Busy() {
		t.Error("expected busy cleared after failed load")
	}
}

func TestLoadAllMalformedBody(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{body: []byte(`{"error": true`)}
	notifier := &recordingNotifier{}
	store := NewStore("http://svc", fetcher, notifier, results.New())

	err := store.LoadAll(context.Background())
	if !errors.Is(err, registry.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if store.Len() != 0 || store.Loaded() {
		t.Error("expected empty, unloaded catalog")
	}
}

func TestTitleForPlaceholder(t *testing.T) {
	t.Parallel()

	store := NewStore("http://svc", &fakeFetcher{}, nil, results.New())
	store.Replace([]models.Movie{{ID: 10, Title: "Heat"}})

	if got := store.TitleFor(10); got != "Heat" {
		t.Errorf("TitleFor(10) = %q", got)
	}
	if got := store.TitleFor(11); got != "película #11" {
		t.Errorf("TitleFor(11) = %q", got)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	t.Parallel()

	store := NewStore("http://svc", &fakeFetcher{}, nil, results.New())
	if all := store.All(); all == nil || len(all) != 0 {
		t.Fatalf("expected empty non-nil catalog, got %v", all)
	}

	store.Replace([]models.Movie{{ID: 1, Title: "Alien"}})
	all := store.All()
	all[0].Title = "mutated"
	if m, _ := store.ByID(1); m.Title != "Alien" {
		t.Error("expected All to return a copy")
	}
}

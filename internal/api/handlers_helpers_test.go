// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tomtom215/cinegraph/internal/models"
)

func TestGenerateETag(t *testing.T) {
	a := generateETag([]byte(`{"status":"success"}`))
	b := generateETag([]byte(`{"status":"success"}`))
	c := generateETag([]byte(`{"status":"error"}`))

	if a != b {
		t.Errorf("expected deterministic ETag, got %s and %s", a, b)
	}
	if a == c {
		t.Error("expected different ETags for different bodies")
	}
	if generateETag(nil) != "811c9dc5" {
		t.Errorf("empty ETag = %s, want FNV offset basis", generateETag(nil))
	}
}

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Ciencia Ficción", "Ciencia Ficción"},
		{"line\nbreak", "line\\x0abreak"},
		{"tab\there", "tab\\x09here"},
		{"del\x7f", "del\\x7f"},
	}
	for _, tt := range tests {
		if got := sanitizeLogValue(tt.in); got != tt.want {
			t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		id   int64
		want bool
	}{
		{"42", 42, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		id, ok := parseID(tt.in)
		if id != tt.id || ok != tt.want {
			t.Errorf("parseID(%q) = %d, %v", tt.in, id, ok)
		}
	}
}

func TestRespondData(t *testing.T) {
	rec := httptest.NewRecorder()
	respondData(rec, http.StatusOK, map[string]int{"count": 3}, time.Now())

	if rec.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Content-Type = %q", rec.Header().Get("Content-Type"))
	}
	if rec.Header().Get("ETag") == "" {
		t.Error("expected ETag")
	}
	var data map[string]int
	decodeData(t, rec, &data)
	if data["count"] != 3 {
		t.Errorf("data = %v", data)
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, http.StatusBadGateway, CodeUpstreamError, "Error al ejecutar algoritmo", errors.New("dial tcp: refused"))

	apiErr := expectError(t, rec, http.StatusBadGateway, CodeUpstreamError)
	if apiErr.Message != "Error al ejecutar algoritmo" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if strings.Contains(rec.Body.String(), "refused") {
		t.Error("internal error leaked into the response")
	}
}

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"empty body", "", false},
		{"valid", `{"movie_id":7}`, false},
		{"unknown field", `{"movie":7}`, true},
		{"malformed", `{"movie_id":`, true},
		{"too large", `{"genre":"` + strings.Repeat("a", maxBodyBytes) + `"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var sel models.Selection
			apiErr := decodeJSONBody(httptest.NewRecorder(), req, &sel)
			if (apiErr != nil) != tt.wantErr {
				t.Fatalf("apiErr = %+v, wantErr %v", apiErr, tt.wantErr)
			}
			if apiErr != nil && apiErr.Code != CodeValidationError {
				t.Errorf("code = %s", apiErr.Code)
			}
			if tt.name == "valid" && sel.MovieID != 7 {
				t.Errorf("MovieID = %d", sel.MovieID)
			}
		})
	}
}

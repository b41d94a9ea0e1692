// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/cinegraph/internal/models"
)

type filterBody struct {
	Genre string `json:"genre" validate:"required,genre"`
}

type endpointBody struct {
	URL   string `json:"url" validate:"required,http_url"`
	Limit int    `json:"limit" validate:"gte=1,lte=10"`
	Name  string `validate:"max=3"`
}

func TestGetValidator_Singleton(t *testing.T) {
	if GetValidator() != GetValidator() {
		t.Error("expected the same validator instance")
	}
}

func TestValidateStruct_Selection(t *testing.T) {
	valid := models.Selection{MovieID: 5, Genres: []string{"Drama"}, Depth: models.Int(3)}
	if err := ValidateStruct(&valid); err != nil {
		t.Errorf("expected valid selection, got %v", err)
	}

	tests := []struct {
		name  string
		sel   models.Selection
		field string
	}{
		{"negative movie", models.Selection{MovieID: -1}, "movie_id"},
		{"depth too large", models.Selection{Depth: models.Int(11)}, "depth"},
		{"too many genres", models.Selection{Genres: make([]string, 21)}, "genres"},
		{"genre too long", models.Selection{Genre: strings.Repeat("x", 101)}, "genre"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.sel)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if got := err.Errors()[0].Field(); got != tt.field {
				t.Errorf("field = %s, want %s", got, tt.field)
			}
		})
	}
}

func TestGenreValidator(t *testing.T) {
	tests := []struct {
		genre string
		valid bool
	}{
		{"Ciencia Ficción", true},
		{"  Drama  ", true},
		{"Cienciá", true},
		{"", false},
		{"   ", false},
		{"Dra\x00ma", false},
		{strings.Repeat("g", 101), false},
	}
	for _, tt := range tests {
		err := ValidateStruct(&filterBody{Genre: tt.genre})
		if (err == nil) != tt.valid {
			t.Errorf("genre %q: valid=%v, err=%v", tt.genre, tt.valid, err)
		}
	}
}

func TestGenreRuleIsRegistered(t *testing.T) {
	err := ValidateStruct(&filterBody{Genre: "   "})
	if err == nil {
		t.Fatal("expected a blank genre to fail")
	}
	if got := err.Errors()[0].Tag(); got != "genre" {
		t.Errorf("tag = %s, want genre", got)
	}
}

func TestToAPIError_SingleError(t *testing.T) {
	err := ValidateStruct(&filterBody{})
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr := err.ToAPIError()
	if apiErr.Code != CodeValidationError {
		t.Errorf("code = %s", apiErr.Code)
	}
	if apiErr.Message != "genre is required" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if apiErr.Details["field"] != "genre" || apiErr.Details["tag"] != "required" {
		t.Errorf("details = %v", apiErr.Details)
	}
}

func TestToAPIError_MultipleErrors(t *testing.T) {
	err := ValidateStruct(&endpointBody{URL: "ftp:/x", Limit: 0, Name: "abcd"})
	if err == nil {
		t.Fatal("expected error")
	}
	if len(err.Errors()) != 3 {
		t.Fatalf("expected 3 errors, got %v", err.Errors())
	}
	apiErr := err.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 3 {
		t.Fatalf("details = %v", apiErr.Details)
	}
	for _, want := range []string{"url: url must be a valid http(s) URL", "limit: limit must be at least", "Name: Name must be at most 3 characters"} {
		if !strings.Contains(apiErr.Message, want) && !strings.Contains(apiErr.Message, strings.Replace(want, "at least", "greater than or equal to", 1)) {
			t.Errorf("message %q missing %q", apiErr.Message, want)
		}
	}
}

func TestToAPIError_Empty(t *testing.T) {
	apiErr := (&RequestValidationError{}).ToAPIError()
	if apiErr.Message != "Validation failed" {
		t.Errorf("message = %q", apiErr.Message)
	}
	if (&RequestValidationError{}).Error() != "validation failed" {
		t.Error("unexpected Error() for empty set")
	}
}

func TestErrorMessages(t *testing.T) {
	err := ValidateStruct(&endpointBody{URL: "http://localhost:8080", Limit: 11})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := err.Error(); got != "limit must be less than or equal to 10" {
		t.Errorf("Error() = %q", got)
	}
}

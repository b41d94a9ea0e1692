// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator that reports json field names
// and registers one custom tag:
//
//   - genre: non-blank after Unicode normalization and trimming, at most 100
//     characters, no control characters
//
// Validation failures convert to the API error envelope:
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondAPIError(w, http.StatusBadRequest, verr.ToAPIError())
//	    return
//	}
//
// Missing algorithm selections are not checked here. They are a registry
// concern and surface as INVALID_SELECTION with the user-facing message.
package validation

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package middleware

import (
	"context"
	"net/http"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/tomtom215/cinegraph/internal/logging"
)

const (
	// HeaderRequestID is echoed on every response.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID is accepted as an alternative inbound header.
	HeaderCorrelationID = "X-Correlation-ID"

	maxRequestIDLength = 128
)

// RequestID stamps each request with a correlation ID.
//
// An ID supplied by an upstream proxy is reused when it is printable and
// reasonably short; otherwise a fresh one is generated. The ID is stored in
// the request context (so dispatch logs carry it) and echoed in X-Request-ID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := inboundID(r)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(HeaderRequestID, id)

		ctx := logging.ContextWithCorrelationID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID extracts the request ID from context.
func GetRequestID(ctx context.Context) string {
	return logging.CorrelationIDFromContext(ctx)
}

func inboundID(r *http.Request) string {
	for _, h := range []string{HeaderRequestID, HeaderCorrelationID} {
		if id := strings.TrimSpace(r.Header.Get(h)); validID(id) {
			return id
		}
	}
	return ""
}

func validID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for _, c := range id {
		if c > unicode.MaxASCII || !unicode.IsPrint(c) || c == ' ' {
			return false
		}
	}
	return true
}

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package models

import (
	"time"
)

// APIResponse is the envelope used by every local HTTP endpoint.
//
//	{
//	  "status": "success",
//	  "data": {"result": {...}, "applied": true},
//	  "metadata": {"timestamp": "2026-01-02T12:00:00Z", "query_time_ms": 45}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error code plus a human message.
//
// Codes used by the local API:
//   - VALIDATION_ERROR: malformed request body
//   - INVALID_SELECTION: the algorithm is missing a required selection
//   - UNKNOWN_VARIANT: no descriptor for the requested variant
//   - UPSTREAM_ERROR: the Algorithm Service failed or returned an unreadable body
//   - NOT_FOUND: unknown movie id
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

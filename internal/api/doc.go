// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package api provides the local HTTP surface for Cinegraph.

Renderers use it to browse the catalog, run algorithm variants and follow
the shared state (current result, status slot, busy flag) over a websocket.

Endpoints:

	GET  /api/v1/health/live          process is up
	GET  /api/v1/health/ready         catalog loaded at least once
	GET  /api/v1/catalog              every movie in the snapshot
	GET  /api/v1/catalog/genres       configured options and catalog genres
	GET  /api/v1/catalog/{id}         one movie
	POST /api/v1/catalog/reload       refetch the catalog
	GET  /api/v1/algorithms           registry listing plus backend descriptions
	POST /api/v1/dispatch/{variant}   run a variant; body is a Selection
	POST /api/v1/filter               {"genre": "..."}; blank answers 204
	GET  /api/v1/result               current result
	GET  /api/v1/status               status slot and busy flag
	GET  /api/v1/ws                   websocket stream
	GET  /metrics                     Prometheus

Responses use the models.APIResponse envelope. Dispatch errors map as:

  - missing selection: 422 INVALID_SELECTION, message for the status slot
  - unknown variant: 404 UNKNOWN_VARIANT
  - Algorithm Service failure or unreadable body: 502 UPSTREAM_ERROR
  - malformed request body: 400 VALIDATION_ERROR

Middleware (chi): request ID, real IP, panic recovery, CORS (go-chi/cors),
Prometheus metrics, per-IP rate limits (go-chi/httprate) tuned per route
group, security headers and gzip for JSON reads.
*/
package api

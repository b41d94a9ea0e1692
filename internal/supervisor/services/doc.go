// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package services provides suture.Service wrappers for Cinegraph components
that do not follow the Serve(ctx) pattern themselves.

# Available Services

HTTP Server (HTTPServerService):
  - Wraps *http.Server; ListenAndServe in a goroutine, Shutdown on cancel
  - http.ErrServerClosed is a clean stop, not a failure

Catalog Loader (CatalogLoaderService):
  - Performs the single startup catalog load against the Algorithm Service
  - Never retried: a failure stays on the status slot until an explicit reload
  - Always finishes with suture.ErrDoNotRestart

The websocket hub and the event bridge implement suture.Service directly
and are added to the tree without a wrapper.

# Return Values

	error                  -> crashed, the supervisor restarts it
	ctx.Err()              -> shutdown requested
	suture.ErrDoNotRestart -> finished, never restarted
*/
package services

// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package websocket pushes state changes to connected renderers.

The package uses gorilla/websocket with a hub-client architecture. The hub
owns the client set; each client runs a read pump (pings) and a write pump
(frames and keepalive pings).

	┌──────────┐     ┌──────────────┐     ┌──────────┐
	│ events   │ ──▶ │ Bridge       │ ──▶ │   Hub    │ ──▶ clients
	│ Bus      │     │ BroadcastRaw │     └──────────┘
	└──────────┘     └──────────────┘

Message Types:

  - result: the AlgorithmResult that just became current
  - status: the status slot notification, or null when it cleared
  - busy: {"busy": bool, "in_flight": n}
  - ping / pong: client keepalive

A newly registered client first receives the greeting snapshot (current
result, status and busy) so it never starts from a blank page.

Usage:

	hub := websocket.NewHub()
	hub.SetGreeting(func() []websocket.Message { ... })
	go hub.RunWithContext(ctx)

	client := websocket.NewClient(hub, conn)
	hub.Register <- client
	client.Start()
*/
package websocket

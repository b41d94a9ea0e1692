// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

/*
Package supervisor provides process supervision for Cinegraph using suture v4.

The tree isolates failures by layer:

	RootSupervisor ("cinegraph")
	├── DataSupervisor ("data-layer")
	│   └── CatalogLoaderService
	├── MessagingSupervisor ("messaging-layer")
	│   ├── websocket.Hub
	│   └── events.Bridge
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (start, stop, failure, backoff) are logged through
sutureslog into the slog handler backed by zerolog.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddDataService(services.NewCatalogLoaderService(store))
	tree.AddMessagingService(hub)
	tree.AddMessagingService(events.NewBridge(bus, hub))
	tree.AddAPIService(services.NewHTTPServerService(srv, srv.Addr, 10*time.Second))

	errCh := tree.ServeBackground(ctx)
*/
package supervisor

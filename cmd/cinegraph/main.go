// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

// Package main is the entry point for the Cinegraph server.
//
// Cinegraph is a client for a remote movie Algorithm Service. It keeps the
// movie catalog, dispatches algorithm variants (graph traversals, spanning
// trees, knapsack-style marathons, genre mixes, rankings) and publishes the
// current result, status notifications and the busy flag to renderers over
// HTTP and a websocket.
//
// # Application Architecture
//
//  1. Configuration: koanf (defaults, config.yaml, environment)
//  2. Algorithm Service client: rate limited, behind a circuit breaker
//  3. Shared state: result projection, status slot, catalog store
//  4. Dispatcher and registry
//  5. Event bus: watermill gochannel, optional NATS fan-out (-tags nats)
//  6. HTTP surface: chi router, websocket hub
//  7. Supervisor tree (suture): catalog loader, hub, event bridge, HTTP server
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server drains for
// server.shutdown_timeout, then the bus and status slot are closed.
//
// # Example Usage
//
//	export CATALOG_API_URL=http://localhost:8080/api/peliculas
//	export ALGORITHM_API_URL=http://localhost:8080/api/algoritmos
//	export CORS_ORIGINS=http://localhost:3000
//	./cinegraph
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/cinegraph/internal/algoapi"
	"github.com/tomtom215/cinegraph/internal/api"
	"github.com/tomtom215/cinegraph/internal/catalog"
	"github.com/tomtom215/cinegraph/internal/config"
	"github.com/tomtom215/cinegraph/internal/dispatch"
	"github.com/tomtom215/cinegraph/internal/events"
	"github.com/tomtom215/cinegraph/internal/logging"
	"github.com/tomtom215/cinegraph/internal/registry"
	"github.com/tomtom215/cinegraph/internal/results"
	"github.com/tomtom215/cinegraph/internal/status"
	"github.com/tomtom215/cinegraph/internal/supervisor"
	"github.com/tomtom215/cinegraph/internal/supervisor/services"
	ws "github.com/tomtom215/cinegraph/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.LoggingSettings())

	logging.Info().
		Str("catalog_url", cfg.API.CatalogURL).
		Str("algorithms_url", cfg.API.AlgorithmsURL).
		Dur("status_ttl", cfg.Status.TTL).
		Bool("nats", cfg.Events.NATS.Enabled).
		Msg("Configuration loaded")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS_ORIGINS=* accepts every origin, including websocket upgrades")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Algorithm Service client
	var service algoapi.Service = algoapi.NewClient(cfg.ClientConfig())
	if cfg.API.Breaker.Enabled {
		service = algoapi.NewCircuitBreakerClient(service, cfg.BreakerSettings())
	}
	pingAlgorithmService(ctx, service, cfg.API.InfoTimeout)

	// Shared state
	projection := results.New()
	slot := status.New(cfg.Status.TTL)
	defer slot.Stop()

	bus := events.NewBus(cfg.BusSettings(), events.NewLoggerAdapter())
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()
	// Attach before anything can produce a result or notification.
	bus.Attach(projection, slot)
	if cfg.Events.NATS.Enabled {
		initNATSForwarder(cfg, bus)
	}

	store := catalog.NewStore(cfg.API.CatalogURL, service, slot, projection)
	reg := registry.New(registry.Endpoints{
		CatalogURL:    cfg.API.CatalogURL,
		AlgorithmsURL: cfg.API.AlgorithmsURL,
	})
	dispatcher := dispatch.New(reg, service, store, slot, projection, cfg.SelectionDefaults())

	// HTTP surface
	hub := ws.NewHub()
	handler := api.NewHandler(api.Dependencies{
		Dispatcher:     dispatcher,
		Catalog:        store,
		Projection:     projection,
		Status:         slot,
		Info:           service,
		Hub:            hub,
		Genres:         cfg.Selection.GenreOptions,
		AllowedOrigins: cfg.Security.CORSOrigins,
		InfoTimeout:    cfg.API.InfoTimeout,
	})

	mwConfig := api.DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mwConfig.RateLimitRequests = cfg.Security.RateLimitReqs
	mwConfig.RateLimitWindow = cfg.Security.RateLimitWindow
	mwConfig.RateLimitDisabled = cfg.Security.RateLimitDisabled
	router := api.NewRouter(handler, api.NewChiMiddleware(mwConfig))

	addr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port))
	server := &http.Server{
		Addr:              addr,
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Supervisor tree
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}
	tree.AddDataService(services.NewCatalogLoaderService(store))
	tree.AddMessagingService(hub)
	tree.AddMessagingService(events.NewBridge(bus, hub))
	tree.AddAPIService(services.NewHTTPServerService(server, addr, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", addr).Int("variants", len(reg.Variants())).Msg("Starting Cinegraph")
	errCh := tree.ServeBackground(ctx)

	var treeErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
		treeErr = <-errCh
	case treeErr = <-errCh:
	}
	if treeErr != nil && !errors.Is(treeErr, context.Canceled) {
		logging.Error().Err(treeErr).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Cinegraph stopped")
}

// pingAlgorithmService logs whether the Algorithm Service answers. It never
// blocks startup: the catalog loader reports a real failure to renderers.
func pingAlgorithmService(ctx context.Context, service algoapi.Service, timeout time.Duration) {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reply, err := service.Ping(pingCtx)
	if err != nil {
		logging.Warn().Err(err).Msg("Algorithm Service not reachable yet")
		return
	}
	logging.Info().Str("reply", reply).Msg("Algorithm Service reachable")
}

// initNATSForwarder adds the NATS fan-out to the bus. Failures only disable
// the fan-out; renderers keep receiving events over the websocket.
func initNATSForwarder(cfg *config.Config, bus *events.Bus) {
	if !events.NATSAvailable {
		logging.Warn().Msg("NATS_ENABLED=true but this binary was built without -tags nats")
		return
	}
	fwd, err := events.NewNATSForwarder(cfg.NATSSettings(), events.NewLoggerAdapter())
	if err != nil {
		logging.Error().Err(err).Msg("NATS fan-out disabled")
		return
	}
	bus.AddForwarder(fwd)
	logging.Info().Str("url", fwd.ClientURL()).Bool("embedded", cfg.Events.NATS.EmbeddedServer).Msg("NATS fan-out enabled")
}

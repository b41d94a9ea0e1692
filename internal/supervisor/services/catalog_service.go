// Cinegraph - Movie Algorithm Explorer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinegraph

package services

import (
	"context"
	"sync/atomic"

	"github.com/thejerf/suture/v4"

	"github.com/tomtom215/cinegraph/internal/logging"
)

// CatalogLoader is satisfied by *catalog.Store.
type CatalogLoader interface {
	LoadAll(ctx context.Context) error
}

// CatalogLoaderService performs the single startup catalog load.
//
// The load runs once whatever its outcome. A failure has already been
// published to the status slot by the store; later loads only happen on an
// explicit reload request.
type CatalogLoaderService struct {
	loader CatalogLoader
	done   atomic.Bool
}

// NewCatalogLoaderService creates the loader service.
func NewCatalogLoaderService(loader CatalogLoader) *CatalogLoaderService {
	return &CatalogLoaderService{loader: loader}
}

// Serve implements suture.Service. It always returns suture.ErrDoNotRestart
// (or ctx.Err() when shut down before the load ran).
func (c *CatalogLoaderService) Serve(ctx context.Context) error {
	if c.done.Swap(true) {
		return suture.ErrDoNotRestart
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.loader.LoadAll(ctx); err != nil {
		logging.Warn().Err(err).Msg("Startup catalog load failed; waiting for an explicit reload")
	}
	return suture.ErrDoNotRestart
}

// Done reports whether the startup load has run.
func (c *CatalogLoaderService) Done() bool {
	return c.done.Load()
}

// String names the service in supervisor logs.
func (c *CatalogLoaderService) String() string {
	return "catalog-loader"
}

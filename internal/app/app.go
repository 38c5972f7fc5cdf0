// Package app is the composition root: it builds the service container,
// selects the modules and runs the HTTP server until ctx is cancelled.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samber/do/v2"

	"github.com/irrigo/dashboard/internal/apiclient"
	"github.com/irrigo/dashboard/internal/config"
	"github.com/irrigo/dashboard/internal/registry"
	"github.com/irrigo/dashboard/internal/server"
)

// Run serves the dashboard until ctx is done. Container services are shut
// down after the HTTP server has drained.
func Run(ctx context.Context, cfg config.Provider) error {
	injector := NewContainer(cfg)
	defer shutdownContainer(injector)

	s, err := Build(ctx, injector)
	if err != nil {
		return err
	}

	slog.Info("starting server", "addr", cfg.GetAppAddr(), "api", cfg.GetAPIBaseURL())
	return s.Start(ctx)
}

// Build assembles the server from the container: routes are registered,
// modules booted and the cache invalidator subscribed to change events.
func Build(ctx context.Context, injector do.Injector) (*server.Server, error) {
	reg, err := do.Invoke[*registry.Registry](injector)
	if err != nil {
		return nil, fmt.Errorf("build registry: %w", err)
	}
	if _, err := do.Invoke[*DictionaryWatcher](injector); err != nil {
		return nil, fmt.Errorf("watch i18n overrides: %w", err)
	}

	api := registry.MustGet(reg, registry.APIClientKey)
	bus := do.MustInvoke[*Bus](injector)
	if err := apiclient.SubscribeInvalidation(ctx, bus, api); err != nil {
		return nil, fmt.Errorf("subscribe cache invalidation: %w", err)
	}

	modules := NewModules(Dependencies{API: api, Publisher: bus})
	s := server.New(reg.Config(), reg, modules)
	if err := s.RegisterRoutes(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func shutdownContainer(injector *do.RootScope) {
	ctx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
	defer cancel()
	injector.ShutdownWithContext(ctx)
	slog.Info("services stopped")
}

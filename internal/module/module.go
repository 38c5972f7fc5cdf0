// Package module defines the lifecycle every dashboard feature follows.
package module

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/irrigo/dashboard/internal/registry"
)

// Module is a self-contained dashboard feature mounted under "/<Name>".
type Module interface {
	// Name is the module's URL segment and log label.
	Name() string

	// Register runs before any module boots. Modules publish the services
	// other modules may look up.
	Register(reg *registry.Registry) error

	// Boot resolves dependencies missing from the module's constructor
	// through reg and installs the routes on router.
	Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error

	// Shutdown runs after the HTTP server stopped accepting requests.
	Shutdown(ctx context.Context) error
}

// BaseModule provides no-op lifecycle methods for embedding.
type BaseModule struct{}

func (m *BaseModule) Register(reg *registry.Registry) error { return nil }
func (m *BaseModule) Boot(ctx context.Context, router *echo.Group, reg *registry.Registry) error {
	return nil
}
func (m *BaseModule) Shutdown(ctx context.Context) error {
	return nil
}

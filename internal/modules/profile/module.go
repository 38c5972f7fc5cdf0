package profile

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/irrigo/dashboard/internal/module"
	"github.com/irrigo/dashboard/internal/registry"
)

// Dependencies holds what the profile module needs.
type Dependencies struct {
	API API
}

// Module serves the tabbed profile page under /profile.
type Module struct {
	module.BaseModule
	api     API
	handler *Handler
}

// New creates the profile module.
func New(deps Dependencies) *Module {
	return &Module{api: deps.API}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "profile"
}

// Boot wires the panels and registers the route. When no API was injected
// the shared client from the registry is used.
func (m *Module) Boot(ctx context.Context, group *echo.Group, reg *registry.Registry) error {
	if m.api == nil {
		client, ok := registry.Get(reg, registry.APIClientKey)
		if !ok {
			return errors.New("profile: api client not registered")
		}
		m.api = client
	}
	m.handler = NewHandler(DefaultPanels(m.api))
	group.GET("/:id", m.handler.Get)
	return nil
}

package scripts

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/irrigo/dashboard/internal/middleware"
	"github.com/irrigo/dashboard/internal/module"
	"github.com/irrigo/dashboard/internal/pubsub"
	"github.com/irrigo/dashboard/internal/registry"
)

// Dependencies holds all the services the scripts module requires.
type Dependencies struct {
	API       API
	Publisher pubsub.Publisher
}

// Module serves the irrigation scripts pages under /scripts.
type Module struct {
	module.BaseModule
	api       API
	publisher pubsub.Publisher
}

// New creates the scripts module.
func New(deps Dependencies) *Module {
	return &Module{api: deps.API, publisher: deps.Publisher}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "scripts"
}

// Boot registers the routes. Missing dependencies are taken from the registry.
func (m *Module) Boot(ctx context.Context, g *echo.Group, reg *registry.Registry) error {
	if m.api == nil {
		client, ok := registry.Get(reg, registry.APIClientKey)
		if !ok {
			return errors.New("scripts: api client not registered")
		}
		m.api = client
	}
	if m.publisher == nil {
		pub, ok := registry.Get(reg, registry.PublisherKey)
		if !ok {
			return errors.New("scripts: publisher not registered")
		}
		m.publisher = pub
	}

	h := NewHandler(m.api, m.publisher)

	g.GET("", h.List)
	g.GET("/:id", h.Show)

	auth := middleware.RequireIdentity
	g.GET("/new", h.New, auth)
	g.POST("", h.Create, auth)
	g.GET("/:id/edit", h.Edit, auth)
	g.POST("/:id", h.Update, auth)
	g.POST("/:id/delete", h.Delete, auth)
	g.POST("/:id/favorite", h.Favorite, auth)
	return nil
}

package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/irrigo/dashboard/internal/config"
	"github.com/irrigo/dashboard/internal/handlers"
	"github.com/irrigo/dashboard/internal/i18n"
	"github.com/irrigo/dashboard/internal/middleware"
	"github.com/irrigo/dashboard/internal/module"
	"github.com/irrigo/dashboard/internal/registry"
	"github.com/irrigo/dashboard/web"
)

// Server holds the dependencies for the HTTP server.
type Server struct {
	E       *echo.Echo
	Cfg     config.Provider
	reg     *registry.Registry
	modules []module.Module

	homeHandler *handlers.HomeHandler
	authHandler *handlers.AuthHandler
}

// New creates a Server from the core services in reg. The registry must
// hold the API client, the i18n bundle and the renderer.
func New(cfg config.Provider, reg *registry.Registry, modules []module.Module) *Server {
	api := registry.MustGet(reg, registry.APIClientKey)
	bundle := registry.MustGet(reg, registry.BundleKey)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = registry.MustGet(reg, registry.RendererKey)
	e.Validator = handlers.NewValidator()
	setupErrorHandling(e)
	setupMiddleware(e, cfg, bundle)

	e.StaticFS("/static", echo.MustSubFS(web.FS, "static"))

	return &Server{
		E:           e,
		Cfg:         cfg,
		reg:         reg,
		modules:     modules,
		homeHandler: handlers.NewHomeHandler(api),
		authHandler: handlers.NewAuthHandler(api),
	}
}

func setupErrorHandling(e *echo.Echo) {
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
}

// setupMiddleware installs the request pipeline. The locale runs before
// routing so "/es/..." matches the unprefixed routes; the request logger
// runs after the identity so it can carry the user id.
func setupMiddleware(e *echo.Echo, cfg config.Provider, bundle *i18n.Bundle) {
	e.Pre(middleware.Locale(bundle))
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.Recover())

	store := sessions.NewCookieStore([]byte(cfg.GetSessionSecret()))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	e.Use(session.Middleware(store))
	e.Use(middleware.LoadIdentity)
	e.Use(middleware.Logger)
}

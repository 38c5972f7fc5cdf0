package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/do/v2"

	"github.com/irrigo/dashboard/internal/apiclient"
	"github.com/irrigo/dashboard/internal/cache"
	"github.com/irrigo/dashboard/internal/config"
	"github.com/irrigo/dashboard/internal/i18n"
	"github.com/irrigo/dashboard/internal/pubsub"
	"github.com/irrigo/dashboard/internal/registry"
	"github.com/irrigo/dashboard/internal/rendering"
)

// i18nReloadDebounce collapses editor save bursts into one reload.
const i18nReloadDebounce = 250 * time.Millisecond

// Bus is the in-process event bus, shut down with the container.
type Bus struct {
	*pubsub.WatermillBridge
}

func (b *Bus) Shutdown(ctx context.Context) error {
	if err := b.Close(); err != nil {
		slog.Error("event bus shutdown failed", "error", err)
		return err
	}
	return nil
}

// Cache is the API response cache, closed with the container.
type Cache struct {
	cache.Backend
}

func (c *Cache) Shutdown(ctx context.Context) error {
	if err := c.Close(); err != nil {
		slog.Error("cache shutdown failed", "error", err)
		return err
	}
	return nil
}

// DictionaryWatcher reloads the i18n bundle from I18N_DIR. Watcher is nil
// when no override directory is configured.
type DictionaryWatcher struct {
	Watcher *i18n.Watcher
	cancel  context.CancelFunc
}

func (w *DictionaryWatcher) Shutdown(ctx context.Context) error {
	if w.Watcher == nil {
		return nil
	}
	w.cancel()
	return w.Watcher.Close()
}

// NewContainer wires the core services. Services are built lazily on first
// invocation and shut down in reverse dependency order.
func NewContainer(cfg config.Provider) *do.RootScope {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.Provide(injector, provideBundle)
	do.Provide(injector, provideWatcher)
	do.Provide(injector, provideCache)
	do.Provide(injector, provideBus)
	do.Provide(injector, provideAPIClient)
	do.Provide(injector, provideRenderer)
	do.Provide(injector, provideRegistry)

	return injector
}

func provideBundle(i do.Injector) (*i18n.Bundle, error) {
	cfg := do.MustInvoke[config.Provider](i)
	return i18n.NewDefaultBundle(cfg.GetDefaultLanguage(), cfg.GetI18nDir())
}

func provideWatcher(i do.Injector) (*DictionaryWatcher, error) {
	cfg := do.MustInvoke[config.Provider](i)
	if cfg.GetI18nDir() == "" {
		return &DictionaryWatcher{}, nil
	}
	bundle := do.MustInvoke[*i18n.Bundle](i)

	ctx, cancel := context.WithCancel(context.Background())
	w, err := i18n.Watch(ctx, bundle, cfg.GetI18nDir(), i18nReloadDebounce)
	if err != nil {
		cancel()
		return nil, err
	}
	slog.Info("watching i18n overrides", "dir", cfg.GetI18nDir())
	return &DictionaryWatcher{Watcher: w, cancel: cancel}, nil
}

func provideCache(i do.Injector) (*Cache, error) {
	cfg := do.MustInvoke[config.Provider](i)
	backend, err := cache.New(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}
	return &Cache{Backend: backend}, nil
}

func provideBus(i do.Injector) (*Bus, error) {
	return &Bus{WatermillBridge: pubsub.NewWatermillBridge()}, nil
}

func provideAPIClient(i do.Injector) (*apiclient.Client, error) {
	cfg := do.MustInvoke[config.Provider](i)
	c := do.MustInvoke[*Cache](i)
	return apiclient.New(cfg.GetAPIBaseURL(), cfg.GetAPITimeout(),
		apiclient.WithCache(c.Backend, cfg.GetCacheTTL())), nil
}

func provideRenderer(i do.Injector) (rendering.Renderer, error) {
	return rendering.NewUniversalRenderer(), nil
}

// provideRegistry exposes the container's services to modules through the
// type-safe registry they are booted with.
func provideRegistry(i do.Injector) (*registry.Registry, error) {
	reg := registry.New(do.MustInvoke[config.Provider](i))
	bus := do.MustInvoke[*Bus](i)

	registry.Set(reg, registry.APIClientKey, do.MustInvoke[*apiclient.Client](i))
	registry.Set(reg, registry.BundleKey, do.MustInvoke[*i18n.Bundle](i))
	registry.Set(reg, registry.RendererKey, do.MustInvoke[rendering.Renderer](i))
	registry.Set[pubsub.Publisher](reg, registry.PublisherKey, bus)
	registry.Set[pubsub.Subscriber](reg, registry.SubscriberKey, bus)
	return reg, nil
}

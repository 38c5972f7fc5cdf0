package app

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrigo/dashboard/internal/i18n"
	"github.com/irrigo/dashboard/internal/registry"
	"github.com/irrigo/dashboard/internal/testutils"
)

func TestNewModules(t *testing.T) {
	var names []string
	for _, m := range NewModules(Dependencies{}) {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{"profile", "scripts", "models"}, names)
}

func TestBuild(t *testing.T) {
	cfg := testutils.ConfigForTests(t)
	injector := NewContainer(cfg)
	defer injector.ShutdownWithContext(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s, err := Build(ctx, injector)
	require.NoError(t, err)

	rec := testutils.Do(s.E, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	reg := do.MustInvoke[*registry.Registry](injector)
	_, ok := registry.Get(reg, registry.PublisherKey)
	assert.True(t, ok)
	watcher := do.MustInvoke[*DictionaryWatcher](injector)
	assert.Nil(t, watcher.Watcher)
}

func TestContainerWatchesOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(`{"home.title": "Fields"}`), 0o644))

	t.Setenv("I18N_DIR", dir)
	injector := NewContainer(testutils.ConfigForTests(t))
	defer injector.ShutdownWithContext(context.Background())

	watcher, err := do.Invoke[*DictionaryWatcher](injector)
	require.NoError(t, err)
	require.NotNil(t, watcher.Watcher)

	bundle := do.MustInvoke[*i18n.Bundle](injector)
	assert.Equal(t, "Fields", bundle.T("en", "home.title"))
}

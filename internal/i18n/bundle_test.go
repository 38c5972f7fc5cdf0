package i18n_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrigo/dashboard/internal/i18n"
)

func memBundle(t *testing.T, files map[string]string) *i18n.Bundle {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, filepath.Join("dict", name), []byte(body), 0o644))
	}
	b := i18n.NewBundle("en")
	b.AddSource(fs, "dict")
	require.NoError(t, b.Load())
	return b
}

func TestBundleLookup(t *testing.T) {
	b := memBundle(t, map[string]string{
		"en.json": `{"greet": "Hello, {0}", "only_en": "English only", "pair": "{0} of {1}", "second": "Zone {1}"}`,
		"es.json": `{"greet": "Hola, {0}"}`,
	})

	tests := []struct {
		name   string
		lang   string
		key    string
		params []string
		want   string
	}{
		{"placeholder substitution", "es", "greet", []string{"Ana"}, "Hola, Ana"},
		{"falls back to the default language", "es", "only_en", nil, "English only"},
		{"language without dictionary uses default", "pt", "greet", []string{"Rui"}, "Hello, Rui"},
		{"missing key echoes the key", "es", "nope.missing", nil, "nope.missing"},
		{"missing params render empty", "en", "pair", []string{"1"}, "1 of "},
		{"placeholder without {0}", "en", "second", []string{"a", "b"}, "Zone b"},
		{"placeholder without {0} and short params", "en", "second", nil, "Zone "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.T(tt.lang, tt.key, tt.params...))
		})
	}
}

func TestBundleLoad(t *testing.T) {
	t.Run("invalid JSON keeps the previous dictionaries", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "d/en.json", []byte(`{"k": "v1"}`), 0o644))
		b := i18n.NewBundle("en")
		b.AddSource(fs, "d")
		require.NoError(t, b.Load())

		require.NoError(t, afero.WriteFile(fs, "d/en.json", []byte(`{"k": `), 0o644))
		err := b.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid JSON")
		assert.Equal(t, "v1", b.T("en", "k"))
	})

	t.Run("later sources override earlier ones", func(t *testing.T) {
		base := afero.NewMemMapFs()
		over := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(base, "a/en.json", []byte(`{"k": "base", "other": "kept"}`), 0o644))
		require.NoError(t, afero.WriteFile(over, "b/en.json", []byte(`{"k": "override"}`), 0o644))

		b := i18n.NewBundle("en")
		b.AddSource(base, "a")
		b.AddSource(over, "b")
		require.NoError(t, b.Load())

		assert.Equal(t, "override", b.T("en", "k"))
		assert.Equal(t, "kept", b.T("en", "other"))
	})

	t.Run("unsupported default falls back to english", func(t *testing.T) {
		assert.Equal(t, "en", i18n.NewBundle("de").DefaultLanguage())
		assert.Equal(t, "es", i18n.NewBundle("ES").DefaultLanguage())
	})
}

func TestBundleCheck(t *testing.T) {
	b := memBundle(t, map[string]string{
		"en.json": `{"a": "A", "b": "B {0}", "c": "C"}`,
		"es.json": `{"a": "A", "b": "B", "extra": "X"}`,
		"pt.json": `{"a": "A", "b": "B {0}", "c": "C"}`,
	})

	var got []string
	for _, p := range b.Check() {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{
		"es: b: placeholder count differs",
		"es: c: missing",
		"es: extra: not in en",
	}, got)
}

func TestEmbeddedDictionariesAreConsistent(t *testing.T) {
	b, err := i18n.NewDefaultBundle("en", "")
	require.NoError(t, err)

	assert.Empty(t, b.Check())
	assert.NotEmpty(t, b.Keys("en"))
	assert.Equal(t, "Página no encontrada", b.T("es", "notfound.title"))
}

func TestLocalizer(t *testing.T) {
	b, err := i18n.NewDefaultBundle("en", "")
	require.NoError(t, err)

	t.Run("percent and numbers follow the locale", func(t *testing.T) {
		assert.Equal(t, "87.5%", b.For("en").Percent(0.875, 1))
		assert.Contains(t, b.For("es").Percent(0.875, 1), "87,5")
		assert.Equal(t, "1,234", b.For("en").Number(1234, 0))
	})

	t.Run("unsupported languages use the default", func(t *testing.T) {
		assert.Equal(t, "en", b.For("fr").Lang())
	})

	t.Run("zero localizer echoes keys", func(t *testing.T) {
		var l i18n.Localizer
		assert.Equal(t, "nav.login", l.T("nav.login"))
	})
}

func TestMatchAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", "en"},
		{"es-AR,es;q=0.9", "es"},
		{"pt-BR", "pt"},
		{"de-DE,fr;q=0.8", "en"},
		{"de-DE,pt;q=0.5", "pt"},
		{"!!garbage!!", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.want, i18n.MatchAcceptLanguage(tt.header, "en"))
		})
	}
}

func TestSplitPrefix(t *testing.T) {
	tests := []struct {
		path     string
		lang     string
		rest     string
		prefixed bool
	}{
		{"/es/scripts", "es", "/scripts", true},
		{"/pt", "pt", "/", true},
		{"/scripts", "", "/scripts", false},
		{"/de/scripts", "", "/de/scripts", false},
		{"/", "", "/", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			lang, rest, ok := i18n.SplitPrefix(tt.path)
			assert.Equal(t, tt.lang, lang)
			assert.Equal(t, tt.rest, rest)
			assert.Equal(t, tt.prefixed, ok)
		})
	}
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	write := func(body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "en.json"), []byte(body), 0o644))
	}
	write(`{"home.title": "Overview"}`)

	b, err := i18n.NewDefaultBundle("en", dir)
	require.NoError(t, err)
	require.Equal(t, "Overview", b.T("en", "home.title"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w, err := i18n.Watch(ctx, b, dir, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	write(`{"home.title": "Control room"}`)

	assert.Eventually(t, func() bool {
		return b.T("en", "home.title") == "Control room"
	}, 2*time.Second, 20*time.Millisecond)
	// Keys not overridden still come from the embedded dictionaries.
	assert.Equal(t, "Sign in", b.T("en", "login.title"))
}

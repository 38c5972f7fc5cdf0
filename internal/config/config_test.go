package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api.local/v1/")
		t.Setenv("SESSION_SECRET", "secret")

		cfg, err := Load(viper.New())
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.GetAppAddr())
		assert.Equal(t, "http://api.local/v1", cfg.GetAPIBaseURL(), "trailing slash is trimmed")
		assert.Equal(t, 10*time.Second, cfg.GetAPITimeout())
		assert.Equal(t, 30*time.Second, cfg.GetCacheTTL())
		assert.Equal(t, "en", cfg.GetDefaultLanguage())
		assert.Empty(t, cfg.GetRedisURL())
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "http://api.local")
		t.Setenv("SESSION_SECRET", "secret")
		t.Setenv("CACHE_TTL", "2m")
		t.Setenv("I18N_DEFAULT_LANG", "ES")
		t.Setenv("LOG_FORMAT", "json")

		cfg, err := Load(viper.New())
		require.NoError(t, err)

		assert.Equal(t, 2*time.Minute, cfg.GetCacheTTL())
		assert.Equal(t, "es", cfg.GetDefaultLanguage())
		assert.Equal(t, "json", cfg.GetLogFormat())
	})

	t.Run("missing required values is an error", func(t *testing.T) {
		t.Setenv("API_BASE_URL", "")
		t.Setenv("SESSION_SECRET", "")

		_, err := Load(viper.New())
		assert.ErrorIs(t, err, errMissingRequired)
	})
}

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/irrigo/dashboard/internal/config"
)

func TestRegistry(t *testing.T) {
	cfg := &config.Config{APIBaseURL: "http://api"}
	reg := New(cfg)

	t.Run("config is exposed", func(t *testing.T) {
		assert.Equal(t, "http://api", reg.Config().GetAPIBaseURL())
	})

	t.Run("set then get", func(t *testing.T) {
		key := Key[string]("test.greeting")
		Set(reg, key, "hola")

		got, ok := Get(reg, key)
		assert.True(t, ok)
		assert.Equal(t, "hola", got)
		assert.Equal(t, "hola", MustGet(reg, key))
	})

	t.Run("missing keys", func(t *testing.T) {
		_, ok := Get(reg, Key[int]("test.missing"))
		assert.False(t, ok)
		assert.Panics(t, func() { MustGet(reg, Key[int]("test.missing")) })
	})

	t.Run("type mismatch is a miss", func(t *testing.T) {
		Set(reg, Key[string]("test.shared"), "text")
		_, ok := Get(reg, Key[int]("test.shared"))
		assert.False(t, ok)
	})
}

package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("returns what was stored", func(t *testing.T) {
		m := NewMemory()
		defer m.Close()

		require.NoError(t, m.Set(ctx, "a", []byte("1"), time.Minute))
		v, ok, err := m.Get(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("1"), v)

		_, ok, err = m.Get(ctx, "missing")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("stored value is a copy", func(t *testing.T) {
		m := NewMemory()
		defer m.Close()

		buf := []byte("abc")
		require.NoError(t, m.Set(ctx, "k", buf, 0))
		buf[0] = 'x'
		v, _, _ := m.Get(ctx, "k")
		assert.Equal(t, "abc", string(v))
	})

	t.Run("expiring read keeps a value set concurrently", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1000, 0)}
		var m *Memory
		var refresh bool
		m = newMemory(func() time.Time {
			if refresh {
				// Lands between the read lock and the write lock in Get.
				refresh = false
				require.NoError(t, m.Set(ctx, "k", []byte("new"), 0))
			}
			return clock.Now()
		})

		require.NoError(t, m.Set(ctx, "k", []byte("old"), time.Second))
		clock.Advance(2 * time.Second)
		refresh = true

		_, ok, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)

		v, ok, err := m.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "new", string(v))
	})

	t.Run("entries expire", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1000, 0)}
		m := newMemory(clock.Now)

		require.NoError(t, m.Set(ctx, "k", []byte("v"), time.Second))
		clock.Advance(999 * time.Millisecond)
		_, ok, _ := m.Get(ctx, "k")
		assert.True(t, ok)

		clock.Advance(time.Millisecond)
		_, ok, _ = m.Get(ctx, "k")
		assert.False(t, ok)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("cleanup drops only expired entries", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(1000, 0)}
		m := newMemory(clock.Now)

		require.NoError(t, m.Set(ctx, "short", []byte("v"), time.Second))
		require.NoError(t, m.Set(ctx, "forever", []byte("v"), 0))
		clock.Advance(time.Hour)
		m.cleanup()

		assert.Equal(t, 1, m.Len())
		_, ok, _ := m.Get(ctx, "forever")
		assert.True(t, ok)
	})

	t.Run("delete prefix", func(t *testing.T) {
		m := NewMemory()
		defer m.Close()

		for _, k := range []string{"scripts:1", "scripts:2", "models:1"} {
			require.NoError(t, m.Set(ctx, k, []byte("v"), 0))
		}
		require.NoError(t, m.DeletePrefix(ctx, "scripts:"))

		assert.Equal(t, 1, m.Len())
		_, ok, _ := m.Get(ctx, "models:1")
		assert.True(t, ok)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		m := NewMemory()
		assert.NoError(t, m.Close())
		assert.NoError(t, m.Close())
	})
}

func TestNew(t *testing.T) {
	t.Run("memory without a redis url", func(t *testing.T) {
		b, err := New("")
		require.NoError(t, err)
		defer b.Close()
		assert.IsType(t, &Memory{}, b)
	})

	t.Run("rejects a malformed redis url", func(t *testing.T) {
		_, err := New("http://localhost:6379")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid redis URL")
	})
}

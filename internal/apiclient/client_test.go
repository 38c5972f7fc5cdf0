package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrigo/dashboard/internal/cache"
	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/pubsub"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientRequests(t *testing.T) {
	t.Run("sends the bearer token and list query", func(t *testing.T) {
		var gotAuth, gotQuery string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotQuery = r.URL.RawQuery
			assert.Equal(t, "/scripts", r.URL.Path)
			writeJSON(w, http.StatusOK, domain.Page[domain.Script]{
				Items: []domain.Script{{ID: "s1", Name: "North field"}},
				Total: 1,
			})
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		page, err := c.ListScripts(context.Background(), "tok", domain.ListQuery{Search: "north", Status: "active", Favorites: true})
		require.NoError(t, err)

		assert.Equal(t, "Bearer tok", gotAuth)
		assert.Equal(t, "favorites=true&page=1&per_page=20&q=north&sort=name&status=active", gotQuery)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "North field", page.Items[0].Name)
	})

	t.Run("anonymous requests carry no authorization header", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			assert.Equal(t, "/users/u1/top-scripts", r.URL.Path)
			writeJSON(w, http.StatusOK, []domain.Script{{ID: "s1"}})
		}))
		defer srv.Close()

		scripts, err := New(srv.URL, time.Second).TopScripts(context.Background(), "", "u1")
		require.NoError(t, err)
		assert.Len(t, scripts, 1)
	})

	t.Run("create posts json", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			var in domain.ScriptInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			writeJSON(w, http.StatusCreated, domain.Script{ID: "s9", Name: in.Name})
		}))
		defer srv.Close()

		s, err := New(srv.URL, time.Second).CreateScript(context.Background(), "tok", domain.ScriptInput{Name: "Drip"})
		require.NoError(t, err)
		assert.Equal(t, "s9", s.ID)
		assert.Equal(t, "Drip", s.Name)
	})

	t.Run("favorite toggles map to put and delete", func(t *testing.T) {
		var methods []string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/models/m1/favorite", r.URL.Path)
			methods = append(methods, r.Method)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		c := New(srv.URL, time.Second)
		require.NoError(t, c.SetModelFavorite(context.Background(), "tok", "m1", true))
		require.NoError(t, c.SetModelFavorite(context.Background(), "tok", "m1", false))
		assert.Equal(t, []string{http.MethodPut, http.MethodDelete}, methods)
	})
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   any
		check  func(t *testing.T, err error)
	}{
		{"not found", http.StatusNotFound, nil, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrNotFound)
		}},
		{"unauthorized", http.StatusUnauthorized, nil, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		}},
		{"forbidden", http.StatusForbidden, nil, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		}},
		{"unprocessable keeps the message", http.StatusUnprocessableEntity, map[string]string{"message": "name taken"}, func(t *testing.T, err error) {
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), "name taken")
		}},
		{"server error", http.StatusBadGateway, map[string]string{"error": "upstream down"}, func(t *testing.T, err error) {
			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadGateway, apiErr.Status)
			assert.Equal(t, "upstream down", apiErr.Message)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, tt.body)
			}))
			defer srv.Close()

			_, err := New(srv.URL, time.Second).Script(context.Background(), "tok", "s1")
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Run("returns the session", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/login", r.URL.Path)
			writeJSON(w, http.StatusOK, domain.Session{UserID: "u1", Name: "Ana", Token: "tok"})
		}))
		defer srv.Close()

		s, err := New(srv.URL, time.Second).Login(context.Background(), domain.Credentials{Email: "a@b.c", Password: "x"})
		require.NoError(t, err)
		assert.Equal(t, "u1", s.UserID)
		assert.Equal(t, "tok", s.Token)
	})

	t.Run("rejected credentials", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer srv.Close()

		_, err := New(srv.URL, time.Second).Login(context.Background(), domain.Credentials{})
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestClientCache(t *testing.T) {
	newServer := func(hits *int32, release <-chan struct{}) *httptest.Server {
		return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(hits, 1)
			if release != nil {
				<-release
			}
			writeJSON(w, http.StatusOK, domain.Script{ID: "s1"})
		}))
	}

	t.Run("second read is served from cache", func(t *testing.T) {
		var hits int32
		srv := newServer(&hits, nil)
		defer srv.Close()

		mem := cache.NewMemory()
		defer mem.Close()
		c := New(srv.URL, time.Second, WithCache(mem, time.Minute))

		for i := 0; i < 3; i++ {
			_, err := c.Script(context.Background(), "tok", "s1")
			require.NoError(t, err)
		}
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("cache entries are per viewer", func(t *testing.T) {
		var hits int32
		srv := newServer(&hits, nil)
		defer srv.Close()

		mem := cache.NewMemory()
		defer mem.Close()
		c := New(srv.URL, time.Second, WithCache(mem, time.Minute))

		_, err := c.Script(context.Background(), "alice", "s1")
		require.NoError(t, err)
		_, err = c.Script(context.Background(), "bob", "s1")
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	})

	t.Run("invalidate forces a refetch", func(t *testing.T) {
		var hits int32
		srv := newServer(&hits, nil)
		defer srv.Close()

		mem := cache.NewMemory()
		defer mem.Close()
		c := New(srv.URL, time.Second, WithCache(mem, time.Minute))

		_, err := c.Script(context.Background(), "tok", "s1")
		require.NoError(t, err)
		require.NoError(t, c.Invalidate(context.Background(), "scripts"))
		_, err = c.Script(context.Background(), "tok", "s1")
		require.NoError(t, err)
		assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	})

	t.Run("concurrent reads share one request", func(t *testing.T) {
		var hits int32
		release := make(chan struct{})
		srv := newServer(&hits, release)
		defer srv.Close()

		c := New(srv.URL, time.Second)

		var wg sync.WaitGroup
		for i := 0; i < 5; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := c.Script(context.Background(), "tok", "s1")
				assert.NoError(t, err)
			}()
		}
		// Give the goroutines time to join the in-flight call.
		time.Sleep(100 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("a canceled caller does not fail the others sharing its fetch", func(t *testing.T) {
		var hits int32
		release := make(chan struct{})
		srv := newServer(&hits, release)
		defer srv.Close()

		c := New(srv.URL, 2*time.Second)

		ctxA, cancelA := context.WithCancel(context.Background())
		errA := make(chan error, 1)
		go func() {
			_, err := c.Script(ctxA, "tok", "s1")
			errA <- err
		}()
		require.Eventually(t, func() bool { return atomic.LoadInt32(&hits) == 1 }, time.Second, 5*time.Millisecond)

		errB := make(chan error, 1)
		go func() {
			_, err := c.Script(context.Background(), "tok", "s1")
			errB <- err
		}()
		// Let B join the in-flight call before A goes away.
		time.Sleep(50 * time.Millisecond)

		cancelA()
		select {
		case err := <-errA:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(time.Second):
			t.Fatal("canceled caller kept waiting")
		}

		close(release)
		select {
		case err := <-errB:
			assert.NoError(t, err)
		case <-time.After(2 * time.Second):
			t.Fatal("second caller never returned")
		}
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("change events invalidate the cache", func(t *testing.T) {
		var hits int32
		srv := newServer(&hits, nil)
		defer srv.Close()

		mem := cache.NewMemory()
		defer mem.Close()
		c := New(srv.URL, time.Second, WithCache(mem, time.Minute))

		bus := pubsub.NewWatermillBridge()
		defer bus.Close()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		require.NoError(t, SubscribeInvalidation(ctx, bus, c))

		_, err := c.Script(ctx, "tok", "s1")
		require.NoError(t, err)
		require.Equal(t, 1, mem.Len())

		require.NoError(t, pubsub.Publish(ctx, bus, ScriptsChanged, "u1", Change{ID: "s1", Action: ActionUpdated}))
		assert.Eventually(t, func() bool { return mem.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
	})
}

func TestCacheKey(t *testing.T) {
	a := cacheKey("/scripts/s1", nil, "tok")
	b := cacheKey("/scripts/s1", nil, "other")
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^scripts:[0-9a-f]{16}:/scripts/s1$`, a)
	assert.Equal(t, "users:anon:/users/u1", cacheKey("/users/u1", nil, ""))
}

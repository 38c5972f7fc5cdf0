package profile_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/modules/profile"
	"github.com/irrigo/dashboard/internal/registry"
	"github.com/irrigo/dashboard/internal/testutils"
)

// fakeAPI records which endpoints were hit and with which token.
type fakeAPI struct {
	mu       sync.Mutex
	calls    []string
	tokens   []string
	failWith error
}

func (f *fakeAPI) record(name, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	f.tokens = append(f.tokens, token)
	return f.failWith
}

func (f *fakeAPI) User(ctx context.Context, token, id string) (*domain.User, error) {
	if err := f.record("user:"+id, token); err != nil {
		return nil, err
	}
	u := testutils.User(id, "Grower "+id)
	return &u, nil
}

func (f *fakeAPI) Activity(ctx context.Context, token, id string) ([]domain.Activity, error) {
	if err := f.record("activity:"+id, token); err != nil {
		return nil, err
	}
	return []domain.Activity{{ID: "a1", Kind: "created", SubjectID: "s9", SubjectName: "Orchard drip", At: time.Now().Add(-3 * time.Hour)}}, nil
}

func (f *fakeAPI) Notifications(ctx context.Context, token, id string) ([]domain.Notification, error) {
	if err := f.record("notifications:"+id, token); err != nil {
		return nil, err
	}
	return []domain.Notification{{ID: "n1", Message: "Valve 3 reported low pressure", At: time.Now()}}, nil
}

func (f *fakeAPI) TopScripts(ctx context.Context, token, id string) ([]domain.Script, error) {
	if err := f.record("top-scripts:"+id, token); err != nil {
		return nil, err
	}
	return []domain.Script{testutils.Script("s1")}, nil
}

func setupProfileTest(t *testing.T) (*echo.Echo, *fakeAPI) {
	t.Helper()
	e := testutils.NewEcho(t)
	api := &fakeAPI{}
	m := profile.New(profile.Dependencies{API: api})
	require.NoError(t, m.Boot(context.Background(), e.Group("/"+m.Name()), registry.New(nil)))
	return e, api
}

func signInAs(t *testing.T, e *echo.Echo, id string) []*http.Cookie {
	return testutils.SignIn(t, e, domain.Session{UserID: id, Name: "Grower " + id, Token: "tok-" + id})
}

func TestProfileTabs(t *testing.T) {
	t.Run("anonymous viewer without tab gets the profile panel", func(t *testing.T) {
		e, api := setupProfileTest(t)

		rec := testutils.Do(e, http.MethodGet, "/profile/u2", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `data-tab="profile"`)
		assert.Contains(t, body, "Grower u2")
		assert.Contains(t, body, `id="tab-activity"`)
		assert.Contains(t, body, `id="tab-top-scripts"`)
		assert.NotContains(t, body, `id="tab-notifications"`)
		assert.Equal(t, []string{"user:u2"}, api.calls)
		assert.Equal(t, []string{""}, api.tokens)
	})

	t.Run("owner may open notifications", func(t *testing.T) {
		e, api := setupProfileTest(t)
		cookies := signInAs(t, e, "u1")

		rec := testutils.Do(e, http.MethodGet, "/profile/u1?tab=notifications", nil, cookies)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `data-tab="notifications"`)
		assert.Contains(t, body, "Valve 3 reported low pressure")
		assert.Contains(t, body, `id="tab-notifications"`)
		assert.Equal(t, []string{"notifications:u1"}, api.calls)
		assert.Equal(t, []string{"tok-u1"}, api.tokens)
	})

	t.Run("notifications of someone else fall back to not found", func(t *testing.T) {
		e, api := setupProfileTest(t)
		cookies := signInAs(t, e, "u1")

		rec := testutils.Do(e, http.MethodGet, "/profile/u2?tab=notifications", nil, cookies)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `id="not-found"`)
		assert.NotContains(t, rec.Body.String(), `id="profile-tabs"`)
		assert.Empty(t, api.calls)
	})

	t.Run("anonymous notifications fall back to not found", func(t *testing.T) {
		e, api := setupProfileTest(t)

		rec := testutils.Do(e, http.MethodGet, "/profile/u1?tab=notifications", nil, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, api.calls)
	})

	for _, target := range []string{"/profile/u1?tab=bogus", "/profile/u1?tab=", "/profile/u1?tab=Profile"} {
		t.Run("invalid tab "+target, func(t *testing.T) {
			e, api := setupProfileTest(t)
			cookies := signInAs(t, e, "u1")

			rec := testutils.Do(e, http.MethodGet, target, nil, cookies)

			assert.Equal(t, http.StatusNotFound, rec.Code)
			assert.Contains(t, rec.Body.String(), `href="/"`)
			assert.Empty(t, api.calls)
		})
	}

	t.Run("ownership is re-evaluated per profile", func(t *testing.T) {
		e, _ := setupProfileTest(t)
		cookies := signInAs(t, e, "u1")

		own := testutils.Do(e, http.MethodGet, "/profile/u1", nil, cookies)
		other := testutils.Do(e, http.MethodGet, "/profile/u2", nil, cookies)

		assert.Contains(t, own.Body.String(), `id="tab-notifications"`)
		assert.NotContains(t, other.Body.String(), `id="tab-notifications"`)
	})

	t.Run("tab links keep the locale prefix and the active link is unchanged", func(t *testing.T) {
		e, _ := setupProfileTest(t)

		rec := testutils.Do(e, http.MethodGet, "/es/profile/u2?tab=activity", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `href="/es/profile/u2?tab=top-scripts"`)
		assert.Contains(t, body, `href="/es/profile/u2?tab=profile"`)
		assert.Contains(t, body, `href="/es/profile/u2?tab=activity"`)
		assert.Contains(t, body, "Orchard drip")
		assert.Contains(t, body, `<html lang="es">`)
	})

	t.Run("fallback links back to the localized root", func(t *testing.T) {
		e, _ := setupProfileTest(t)

		rec := testutils.Do(e, http.MethodGet, "/pt/profile/u2?tab=nope", nil, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="/pt"`)
	})

	t.Run("htmx requests get only the tab strip and panel", func(t *testing.T) {
		e, _ := setupProfileTest(t)

		rec := testutils.Do(e, http.MethodGet, "/profile/u2?tab=top-scripts", nil, nil, "HX-Request", "true")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.True(t, strings.HasPrefix(body, `<div id="profile-tabs">`), body)
		assert.NotContains(t, body, "<html")
		assert.Contains(t, body, `href="/scripts/s1"`)
	})

	t.Run("panel failures render inline", func(t *testing.T) {
		e, api := setupProfileTest(t)
		api.failWith = errors.New("upstream timeout")

		rec := testutils.Do(e, http.MethodGet, "/profile/u2?tab=activity", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, `id="profile-panel"`)
		assert.Contains(t, body, `role="alert"`)
		assert.NotContains(t, body, `id="not-found"`)
	})
}

func TestBootRequiresAPIClient(t *testing.T) {
	m := profile.New(profile.Dependencies{})
	err := m.Boot(context.Background(), echo.New().Group("/profile"), registry.New(nil))
	assert.Error(t, err)
}

package testutils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/irrigo/dashboard/internal/config"
	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/handlers"
	"github.com/irrigo/dashboard/internal/i18n"
	"github.com/irrigo/dashboard/internal/logging"
	"github.com/irrigo/dashboard/internal/middleware"
	"github.com/irrigo/dashboard/internal/rendering"
	"github.com/irrigo/dashboard/internal/view"
)

// SessionSecret signs the cookies of test servers.
const SessionSecret = "a-very-secret-key-for-testing-!"

// ConfigForTests loads the .env.test file and returns a valid config.Provider.
func ConfigForTests(t *testing.T) config.Provider {
	t.Helper()

	// 1. Find project root by looking for go.mod to reliably locate .env.test
	path, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(path, "go.mod")); err == nil {
			break
		}
		if path == filepath.Dir(path) {
			t.Fatalf("could not find project root with go.mod")
		}
		path = filepath.Dir(path)
	}

	// 2. Manually read the .env.test file.
	env, err := godotenv.Read(filepath.Join(path, ".env.test"))
	if err != nil {
		t.Fatalf("failed to load .env.test file: %v", err)
	}

	// 3. Use t.Setenv to set the environment variables for this test.
	for key, value := range env {
		t.Setenv(key, value)
	}

	logging.New("text", "error")

	return config.New()
}

// Bundle returns the embedded dictionaries with English as default.
func Bundle(t *testing.T) *i18n.Bundle {
	t.Helper()
	b, err := i18n.NewDefaultBundle("en", "")
	require.NoError(t, err)
	return b
}

// NewEcho returns an echo instance wired like the real server: locale
// prefix handling, cookie sessions, identity, validator, renderer and the
// application error handler. It also exposes two helper routes used by
// SignIn and Flashes.
func NewEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = handlers.HTTPErrorHandler
	e.Pre(middleware.Locale(Bundle(t)))
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(SessionSecret))))
	e.Use(middleware.LoadIdentity)

	e.POST("/_test/signin", func(c echo.Context) error {
		s := domain.Session{UserID: c.FormValue("user_id"), Name: c.FormValue("name"), Token: c.FormValue("token")}
		if err := middleware.SaveIdentity(c, s); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	})
	e.GET("/_test/flash", func(c echo.Context) error {
		return c.JSON(http.StatusOK, view.GetFlashData(c))
	})
	return e
}

// Do serves one request. A non-nil form is sent url-encoded.
func Do(e *echo.Echo, method, target string, form url.Values, cookies []*http.Cookie, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// Cookies returns the cookies set by a response.
func Cookies(rec *httptest.ResponseRecorder) []*http.Cookie {
	return (&http.Response{Header: rec.Header()}).Cookies()
}

// SignIn returns session cookies for s.
func SignIn(t *testing.T, e *echo.Echo, s domain.Session) []*http.Cookie {
	t.Helper()
	rec := Do(e, http.MethodPost, "/_test/signin", url.Values{
		"user_id": {s.UserID},
		"name":    {s.Name},
		"token":   {s.Token},
	}, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)
	return Cookies(rec)
}

// Flashes reads the flash messages a response left in its cookies.
func Flashes(t *testing.T, e *echo.Echo, rec *httptest.ResponseRecorder) view.FlashData {
	t.Helper()
	out := Do(e, http.MethodGet, "/_test/flash", nil, Cookies(rec))
	require.Equal(t, http.StatusOK, out.Code)
	var data view.FlashData
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &data))
	return data
}

package view_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/irrigo/dashboard/internal/view"
	"github.com/stretchr/testify/assert"
)

const testSessionSecret = "a-very-secret-key-for-testing-!"

func setupTestContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	store := sessions.NewCookieStore([]byte(testSessionSecret))
	sessionMiddleware := session.Middleware(store)

	// Run a no-op handler through the middleware to get an initialized context.
	var c echo.Context
	handler := func(ctx echo.Context) error { c = ctx; return nil }
	sessionMiddleware(handler)(e.NewContext(req, rec))

	return c, rec
}

func TestFlashMessages(t *testing.T) {
	t.Run("Set and Get Success Flash", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashSuccess(c, "It worked!")

		flashes := view.GetFlashData(c)

		assert.NotEmpty(t, flashes.Success)
		assert.Equal(t, "It worked!", flashes.Success[0])
		assert.Empty(t, flashes.Error)

		flashesAfterRead := view.GetFlashData(c)
		assert.Empty(t, flashesAfterRead.Success, "Flashes should be cleared after being read")
	})

	t.Run("Set and Get Error Flash", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashError(c, "It failed!")

		flashes := view.GetFlashData(c)

		assert.NotEmpty(t, flashes.Error)
		assert.Equal(t, "It failed!", flashes.Error[0])
		assert.Empty(t, flashes.Success)
	})

	t.Run("GetFlashes with no flashes set", func(t *testing.T) {
		c, _ := setupTestContext()

		flashes := view.GetFlashData(c)
		assert.Empty(t, flashes.Success, "Success flashes should be empty")
		assert.Empty(t, flashes.Error, "Error flashes should be empty")
		assert.True(t, flashes.Empty())
	})

	t.Run("Error with a form value is written in one cookie", func(t *testing.T) {
		c, rec := setupTestContext()

		view.SetFlashErrorWithValue(c, "Invalid email or password.", "form_email", "ana@example.com")

		assert.Len(t, rec.Header().Values("Set-Cookie"), 1)
		assert.Equal(t, "ana@example.com", view.TakeFlashValue(c, "form_email"))
		assert.Equal(t, []string{"Invalid email or password."}, view.GetFlashData(c).Error)
		assert.Empty(t, view.TakeFlashValue(c, "form_email"), "values are consumed once")
	})

	t.Run("Taking a value alone is persisted by GetFlashData", func(t *testing.T) {
		c, rec := setupTestContext()

		view.SetFlashErrorWithValue(c, "x", "form_email", "ana@example.com")
		view.GetFlashData(c)
		before := len(rec.Header().Values("Set-Cookie"))

		assert.Equal(t, "ana@example.com", view.TakeFlashValue(c, "form_email"))
		assert.True(t, view.GetFlashData(c).Empty())
		assert.Len(t, rec.Header().Values("Set-Cookie"), before+1)
	})

	t.Run("Multiple flashes keep their order", func(t *testing.T) {
		c, _ := setupTestContext()

		view.SetFlashSuccess(c, "Script saved")
		view.SetFlashSuccess(c, "Added to favorites")

		flashes := view.GetFlashData(c)
		assert.Equal(t, []string{"Script saved", "Added to favorites"}, flashes.Success)
	})
}

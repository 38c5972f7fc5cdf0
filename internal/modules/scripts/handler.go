package scripts

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/irrigo/dashboard/internal/apiclient"
	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/handlers"
	"github.com/irrigo/dashboard/internal/middleware"
	"github.com/irrigo/dashboard/internal/modules/scripts/view"
	"github.com/irrigo/dashboard/internal/pubsub"
	"github.com/irrigo/dashboard/internal/rendering"
	gview "github.com/irrigo/dashboard/internal/view"
)

// API is the part of the remote API the scripts pages use.
type API interface {
	ListScripts(ctx context.Context, token string, q domain.ListQuery) (domain.Page[domain.Script], error)
	Script(ctx context.Context, token, id string) (*domain.Script, error)
	CreateScript(ctx context.Context, token string, in domain.ScriptInput) (*domain.Script, error)
	UpdateScript(ctx context.Context, token, id string, in domain.ScriptInput) (*domain.Script, error)
	DeleteScript(ctx context.Context, token, id string) error
	SetScriptFavorite(ctx context.Context, token, id string, favorite bool) error
}

// Handler serves the scripts pages.
type Handler struct {
	api       API
	publisher pubsub.Publisher
}

// NewHandler creates a new scripts Handler.
func NewHandler(api API, publisher pubsub.Publisher) *Handler {
	return &Handler{api: api, publisher: publisher}
}

// List renders GET /scripts. htmx requests from the filter form or the
// pagination only get the results table.
func (h *Handler) List(c echo.Context) error {
	q, err := handlers.BindListQuery(c)
	if err != nil {
		return err
	}
	q.Kind = ""
	if !isStatus(q.Status) {
		q.Status = ""
	}

	result, err := h.api.ListScripts(c.Request().Context(), token(c), q)
	if err != nil {
		return err
	}

	p := rendering.NewPage(c, middleware.Localizer(c).T("scripts.title"))
	data := view.ListData{Query: q, Filters: handlers.FilterValues(q), Result: result}
	if rendering.IsHTMX(c) {
		return rendering.Page(c, http.StatusOK, p, view.Results(p, data))
	}
	return rendering.Page(c, http.StatusOK, p, view.List(p, data))
}

// Show renders GET /scripts/:id.
func (h *Handler) Show(c echo.Context) error {
	s, err := h.api.Script(c.Request().Context(), token(c), c.Param("id"))
	if err != nil {
		return err
	}
	p := rendering.NewPage(c, s.Name)
	return rendering.Page(c, http.StatusOK, p, view.Detail(p, *s))
}

// New renders the empty create form.
func (h *Handler) New(c echo.Context) error {
	in := domain.ScriptInput{Status: domain.ScriptDraft, DurationMinutes: 30}
	return h.renderForm(c, http.StatusOK, "", in, nil)
}

// Create handles POST /scripts.
func (h *Handler) Create(c echo.Context) error {
	// 1. Bind and validate.
	var in domain.ScriptInput
	errs, err := handlers.BindForm(c, &in)
	if err != nil {
		return err
	}
	if errs.Any() {
		return h.renderForm(c, http.StatusUnprocessableEntity, "", in, errs)
	}

	// 2. Store it upstream.
	s, err := h.api.CreateScript(c.Request().Context(), token(c), in)
	if errors.Is(err, domain.ErrInvalidInput) {
		return h.renderForm(c, http.StatusUnprocessableEntity, "", in, rejected(c))
	}
	if err != nil {
		return err
	}

	// 3. Announce and redirect.
	h.publish(c, s.ID, apiclient.ActionCreated)
	gview.SetFlashSuccess(c, middleware.Localizer(c).T("script.created", s.Name))
	return c.Redirect(http.StatusSeeOther, middleware.LocalPath(c, "/scripts/"+s.ID))
}

// Edit renders the edit form of a script the viewer owns.
func (h *Handler) Edit(c echo.Context) error {
	s, err := h.owned(c)
	if err != nil {
		return err
	}
	return h.renderForm(c, http.StatusOK, s.ID, s.InputFrom(), nil)
}

// Update handles POST /scripts/:id.
func (h *Handler) Update(c echo.Context) error {
	s, err := h.owned(c)
	if err != nil {
		return err
	}

	var in domain.ScriptInput
	errs, err := handlers.BindForm(c, &in)
	if err != nil {
		return err
	}
	if errs.Any() {
		return h.renderForm(c, http.StatusUnprocessableEntity, s.ID, in, errs)
	}

	updated, err := h.api.UpdateScript(c.Request().Context(), token(c), s.ID, in)
	if errors.Is(err, domain.ErrInvalidInput) {
		return h.renderForm(c, http.StatusUnprocessableEntity, s.ID, in, rejected(c))
	}
	if err != nil {
		return err
	}

	h.publish(c, updated.ID, apiclient.ActionUpdated)
	gview.SetFlashSuccess(c, middleware.Localizer(c).T("script.updated", updated.Name))
	return c.Redirect(http.StatusSeeOther, middleware.LocalPath(c, "/scripts/"+updated.ID))
}

// Delete handles POST /scripts/:id/delete.
func (h *Handler) Delete(c echo.Context) error {
	s, err := h.owned(c)
	if err != nil {
		return err
	}
	if err := h.api.DeleteScript(c.Request().Context(), token(c), s.ID); err != nil {
		return err
	}

	h.publish(c, s.ID, apiclient.ActionDeleted)
	gview.SetFlashSuccess(c, middleware.Localizer(c).T("script.deleted", s.Name))
	target := middleware.LocalPath(c, "/scripts")
	if rendering.IsHTMX(c) {
		c.Response().Header().Set("HX-Redirect", target)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

// Favorite handles POST /scripts/:id/favorite. The form carries the wanted
// state; htmx gets the updated button back, plain posts are redirected to
// the script.
func (h *Handler) Favorite(c echo.Context) error {
	want, err := strconv.ParseBool(c.FormValue("favorite"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "favorite must be true or false")
	}

	ctx := c.Request().Context()
	s, err := h.api.Script(ctx, token(c), c.Param("id"))
	if err != nil {
		return err
	}
	if err := h.api.SetScriptFavorite(ctx, token(c), s.ID, want); err != nil {
		return err
	}
	count := favoritesAfter(s.Favorite, want, s.FavoritesCount)

	h.publish(c, s.ID, apiclient.ActionFavorited)
	if rendering.IsHTMX(c) {
		p := rendering.NewPage(c, s.Name)
		return rendering.Page(c, http.StatusOK, p, view.FavoriteButton(p, s.ID, want, count))
	}
	return c.Redirect(http.StatusSeeOther, middleware.LocalPath(c, "/scripts/"+s.ID))
}

// favoritesAfter adjusts count for a toggle from was to now.
func favoritesAfter(was, now bool, count int) int {
	switch {
	case now && !was:
		return count + 1
	case !now && was && count > 0:
		return count - 1
	}
	return count
}

// owned loads the :id script and makes sure the viewer owns it.
func (h *Handler) owned(c echo.Context) (*domain.Script, error) {
	s, err := h.api.Script(c.Request().Context(), token(c), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if s.OwnerID != middleware.CurrentIdentity(c).UserID {
		return nil, echo.NewHTTPError(http.StatusForbidden, middleware.Localizer(c).T("error.forbidden"))
	}
	return s, nil
}

func (h *Handler) renderForm(c echo.Context, status int, id string, in domain.ScriptInput, errs gview.FieldErrors) error {
	loc := middleware.Localizer(c)
	title, action := loc.T("scripts.new_title"), middleware.LocalPath(c, "/scripts")
	if id != "" {
		title, action = loc.T("scripts.edit_title", in.Name), middleware.LocalPath(c, "/scripts/"+id)
	}
	p := rendering.NewPage(c, title)
	return rendering.Page(c, status, p, view.Form(p, title, action, in, errs))
}

func (h *Handler) publish(c echo.Context, id, action string) {
	ctx := c.Request().Context()
	err := pubsub.Publish(ctx, h.publisher, apiclient.ScriptsChanged, middleware.CurrentIdentity(c).UserID, apiclient.Change{ID: id, Action: action})
	if err != nil {
		middleware.FromContext(ctx).Warn("failed to publish script change", "id", id, "action", action, "error", err)
	}
}

func rejected(c echo.Context) gview.FieldErrors {
	return gview.FieldErrors{"form": middleware.Localizer(c).T("form.rejected")}
}

func token(c echo.Context) string {
	return middleware.CurrentIdentity(c).Token
}

func isStatus(s string) bool {
	for _, st := range domain.ScriptStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}

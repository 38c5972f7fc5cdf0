package models

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
	"github.com/irrigo/dashboard/internal/modules/models/view"
	"github.com/irrigo/dashboard/internal/pubsub"
	"github.com/irrigo/dashboard/internal/rendering"
	gview "github.com/irrigo/dashboard/internal/view"
)

// API is the part of the remote API the models pages use.
type API interface {
	ListModels(ctx context.Context, token string, q domain.ListQuery) (domain.Page[domain.Model], error)
	Model(ctx context.Context, token, id string) (*domain.Model, error)
	CreateModel(ctx context.Context, token string, in domain.ModelInput) (*domain.Model, error)
	UpdateModel(ctx context.Context, token, id string, in domain.ModelInput) (*domain.Model, error)
	DeleteModel(ctx context.Context, token, id string) error
	SetModelFavorite(ctx context.Context, token, id string, favorite bool) error
}

// Handler serves the models pages.
type Handler struct {
	api       API
	publisher pubsub.Publisher
}

// NewHandler creates a new models Handler.
func NewHandler(api API, publisher pubsub.Publisher) *Handler {
	return &Handler{api: api, publisher: publisher}
}

// List renders GET /models with kind and status filters.
func (h *Handler) List(c echo.Context) error {
	q, err := handlers.BindListQuery(c)
	if err != nil {
		return err
	}
	if !known(domain.ModelKinds, q.Kind) {
		q.Kind = ""
	}
	if !known(domain.ModelStatuses, q.Status) {
		q.Status = ""
	}

	id := middleware.CurrentIdentity(c)
	result, err := h.api.ListModels(c.Request().Context(), id.Token, q)
	if err != nil {
		return err
	}

	p := rendering.NewPage(c, middleware.Localizer(c).T("models.title"))
	data := view.ListData{Query: q, Filters: handlers.FilterValues(q), Result: result}
	if rendering.IsHTMX(c) {
		return rendering.Page(c, http.StatusOK, p, view.Results(p, data))
	}
	return rendering.Page(c, http.StatusOK, p, view.List(p, data))
}

// Show renders the model info page.
func (h *Handler) Show(c echo.Context) error {
	id := middleware.CurrentIdentity(c)
	m, err := h.api.Model(c.Request().Context(), id.Token, c.Param("id"))
	if err != nil {
		return err
	}
	p := rendering.NewPage(c, m.Name)
	return rendering.Page(c, http.StatusOK, p, view.Info(p, *m))
}

// New renders the empty create form.
func (h *Handler) New(c echo.Context) error {
	return h.form(c, http.StatusOK, nil, domain.ModelInput{Kind: domain.ModelSoilMoisture, Status: domain.ModelTraining}, nil)
}

// Create handles POST /models.
func (h *Handler) Create(c echo.Context) error {
	var in domain.ModelInput
	errs, err := handlers.BindForm(c, &in)
	if err != nil {
		return err
	}
	if errs.Any() {
		return h.form(c, http.StatusUnprocessableEntity, nil, in, errs)
	}

	id := middleware.CurrentIdentity(c)
	m, err := h.api.CreateModel(c.Request().Context(), id.Token, in)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return h.form(c, http.StatusUnprocessableEntity, nil, in, gview.FieldErrors{"form": middleware.Localizer(c).T("form.rejected")})
	case err != nil:
		return err
	}

	h.publish(c, m.ID, apiclient.ActionCreated)
	gview.SetFlashSuccess(c, middleware.Localizer(c).T("model.created", m.Name))
	return c.Redirect(http.StatusSeeOther, middleware.LocalPath(c, "/models/"+m.ID))
}

// Edit renders the edit form of a model the viewer owns.
func (h *Handler) Edit(c echo.Context) error {
	m, err := h.load(c, true)
	if err != nil {
		return err
	}
	return h.form(c, http.StatusOK, m, m.InputFrom(), nil)
}

// Update handles POST /models/:id.
func (h *Handler) Update(c echo.Context) error {
	m, err := h.load(c, true)
	if err != nil {
		return err
	}

	var in domain.ModelInput
	errs, err := handlers.BindForm(c, &in)
	if err != nil {
		return err
	}
	if errs.Any() {
		return h.form(c, http.StatusUnprocessableEntity, m, in, errs)
	}

	id := middleware.CurrentIdentity(c)
	updated, err := h.api.UpdateModel(c.Request().Context(), id.Token, m.ID, in)
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return h.form(c, http.StatusUnprocessableEntity, m, in, gview.FieldErrors{"form": middleware.Localizer(c).T("form.rejected")})
	case err != nil:
		return err
	}

	h.publish(c, updated.ID, apiclient.ActionUpdated)
	gview.SetFlashSuccess(c, middleware.Localizer(c).T("model.updated", updated.Name))
	return c.Redirect(http.StatusSeeOther, middleware.LocalPath(c, "/models/"+updated.ID))
}

// Delete handles POST /models/:id/delete.
func (h *Handler) Delete(c echo.Context) error {
	m, err := h.load(c, true)
	if err != nil {
		return err
	}
	id := middleware.CurrentIdentity(c)
	if err := h.api.DeleteModel(c.Request().Context(), id.Token, m.ID); err != nil {
		return err
	}

	h.publish(c, m.ID, apiclient.ActionDeleted)
	gview.SetFlashSuccess(c, middleware.Localizer(c).T("model.deleted", m.Name))
	return c.Redirect(http.StatusSeeOther, middleware.LocalPath(c, "/models"))
}

// Favorite handles POST /models/:id/favorite from the list view.
func (h *Handler) Favorite(c echo.Context) error {
	want, err := strconv.ParseBool(c.FormValue("favorite"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "favorite must be true or false")
	}
	m, err := h.load(c, false)
	if err != nil {
		return err
	}

	id := middleware.CurrentIdentity(c)
	if err := h.api.SetModelFavorite(c.Request().Context(), id.Token, m.ID, want); err != nil {
		return err
	}
	count := m.FavoritesCount
	if want && !m.Favorite {
		count++
	} else if !want && m.Favorite && count > 0 {
		count--
	}

	h.publish(c, m.ID, apiclient.ActionFavorited)
	if rendering.IsHTMX(c) {
		p := rendering.NewPage(c, m.Name)
		return rendering.Page(c, http.StatusOK, p, view.FavoriteButton(p, m.ID, want, count))
	}
	return c.Redirect(http.StatusSeeOther, middleware.LocalPath(c, "/models"))
}

// load fetches the :id model; with mustOwn the viewer has to own it.
func (h *Handler) load(c echo.Context, mustOwn bool) (*domain.Model, error) {
	id := middleware.CurrentIdentity(c)
	m, err := h.api.Model(c.Request().Context(), id.Token, c.Param("id"))
	if err != nil {
		return nil, err
	}
	if mustOwn && m.OwnerID != id.UserID {
		return nil, echo.NewHTTPError(http.StatusForbidden, middleware.Localizer(c).T("error.forbidden"))
	}
	return m, nil
}

// form renders the create form, or the edit form when m is set.
func (h *Handler) form(c echo.Context, status int, m *domain.Model, in domain.ModelInput, errs gview.FieldErrors) error {
	loc := middleware.Localizer(c)
	title, action := loc.T("models.new_title"), middleware.LocalPath(c, "/models")
	if m != nil {
		title, action = loc.T("models.edit_title", m.Name), middleware.LocalPath(c, "/models/"+m.ID)
	}
	p := rendering.NewPage(c, title)
	return rendering.Page(c, status, p, view.Form(p, title, action, in, errs))
}

func (h *Handler) publish(c echo.Context, id, action string) {
	ctx := c.Request().Context()
	change := apiclient.Change{ID: id, Action: action}
	if err := pubsub.Publish(ctx, h.publisher, apiclient.ModelsChanged, middleware.CurrentIdentity(c).UserID, change); err != nil {
		middleware.FromContext(ctx).Warn("failed to publish model change", "id", id, "action", action, "error", err)
	}
}

func known[T ~string](values []T, v string) bool {
	for _, x := range values {
		if string(x) == v {
			return true
		}
	}
	return false
}

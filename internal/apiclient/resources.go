package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/irrigo/dashboard/internal/domain"
)

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	var s domain.Session
	err := c.send(ctx, http.MethodPost, "", "/auth/login", creds, &s)
	if errors.Is(err, domain.ErrUnauthorized) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func userPath(id string, sub ...string) string {
	p := "/users/" + url.PathEscape(id)
	for _, s := range sub {
		p += "/" + s
	}
	return p
}

// User returns the public profile of a user.
func (c *Client) User(ctx context.Context, token, id string) (*domain.User, error) {
	u, err := get[domain.User](ctx, c, token, userPath(id), nil)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Activity returns the activity feed of a user.
func (c *Client) Activity(ctx context.Context, token, id string) ([]domain.Activity, error) {
	return get[[]domain.Activity](ctx, c, token, userPath(id, "activity"), nil)
}

// Notifications returns a user's notifications. The API only answers for the
// owner's own token.
func (c *Client) Notifications(ctx context.Context, token, id string) ([]domain.Notification, error) {
	return get[[]domain.Notification](ctx, c, token, userPath(id, "notifications"), nil)
}

// TopScripts returns a user's most favorited scripts.
func (c *Client) TopScripts(ctx context.Context, token, id string) ([]domain.Script, error) {
	return get[[]domain.Script](ctx, c, token, userPath(id, "top-scripts"), nil)
}

func scriptPath(id string) string { return "/scripts/" + url.PathEscape(id) }

// ListScripts returns one page of scripts matching q.
func (c *Client) ListScripts(ctx context.Context, token string, q domain.ListQuery) (domain.Page[domain.Script], error) {
	return get[domain.Page[domain.Script]](ctx, c, token, "/scripts", q.Values())
}

// Script returns a single script.
func (c *Client) Script(ctx context.Context, token, id string) (*domain.Script, error) {
	s, err := get[domain.Script](ctx, c, token, scriptPath(id), nil)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateScript stores a new script owned by the token's user.
func (c *Client) CreateScript(ctx context.Context, token string, in domain.ScriptInput) (*domain.Script, error) {
	var s domain.Script
	if err := c.send(ctx, http.MethodPost, token, "/scripts", in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateScript replaces the editable fields of a script.
func (c *Client) UpdateScript(ctx context.Context, token, id string, in domain.ScriptInput) (*domain.Script, error) {
	var s domain.Script
	if err := c.send(ctx, http.MethodPut, token, scriptPath(id), in, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteScript removes a script.
func (c *Client) DeleteScript(ctx context.Context, token, id string) error {
	return c.send(ctx, http.MethodDelete, token, scriptPath(id), nil, nil)
}

// SetScriptFavorite marks or unmarks a script as a favorite of the viewer.
func (c *Client) SetScriptFavorite(ctx context.Context, token, id string, favorite bool) error {
	method := http.MethodPut
	if !favorite {
		method = http.MethodDelete
	}
	return c.send(ctx, method, token, scriptPath(id)+"/favorite", nil, nil)
}

func modelPath(id string) string { return "/models/" + url.PathEscape(id) }

// ListModels returns one page of models matching q.
func (c *Client) ListModels(ctx context.Context, token string, q domain.ListQuery) (domain.Page[domain.Model], error) {
	return get[domain.Page[domain.Model]](ctx, c, token, "/models", q.Values())
}

// Model returns a single model record.
func (c *Client) Model(ctx context.Context, token, id string) (*domain.Model, error) {
	m, err := get[domain.Model](ctx, c, token, modelPath(id), nil)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateModel stores a new model record.
func (c *Client) CreateModel(ctx context.Context, token string, in domain.ModelInput) (*domain.Model, error) {
	var m domain.Model
	if err := c.send(ctx, http.MethodPost, token, "/models", in, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateModel replaces the editable fields of a model record.
func (c *Client) UpdateModel(ctx context.Context, token, id string, in domain.ModelInput) (*domain.Model, error) {
	var m domain.Model
	if err := c.send(ctx, http.MethodPut, token, modelPath(id), in, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// DeleteModel removes a model record.
func (c *Client) DeleteModel(ctx context.Context, token, id string) error {
	return c.send(ctx, http.MethodDelete, token, modelPath(id), nil, nil)
}

// SetModelFavorite marks or unmarks a model as a favorite of the viewer.
func (c *Client) SetModelFavorite(ctx context.Context, token, id string, favorite bool) error {
	method := http.MethodPut
	if !favorite {
		method = http.MethodDelete
	}
	return c.send(ctx, method, token, modelPath(id)+"/favorite", nil, nil)
}

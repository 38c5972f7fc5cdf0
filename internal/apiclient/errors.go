package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/irrigo/dashboard/internal/domain"
)

// Error is an API failure that has no domain meaning.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d %s", e.Status, e.Message)
}

// newError maps an error response onto the domain sentinels where one fits.
func newError(status int, body []byte) error {
	msg := errorMessage(body)
	switch status {
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.ErrUnauthorized
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		if msg == "" {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
	}
	return &Error{Status: status, Message: msg}
}

func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}

package domain

import "errors"

// Sentinel errors for the domain layer. These provide consistent, checkable
// errors for failures reported by the remote irrigation API.
var (
	ErrNotFound           = errors.New("requested resource not found")
	ErrUnauthorized       = errors.New("not authorized for this resource")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials provided")
)

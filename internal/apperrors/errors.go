// Package apperrors defines the failure categories the API surfaces.
// Repositories and services wrap these with fmt.Errorf("...: %w") so
// handlers can map them to HTTP statuses with errors.Is while the message
// keeps its context.
package apperrors

import "errors"

var (
	// ErrValidation marks a malformed or missing required field. 400.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced record that does not exist. 404.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials marks a failed login. 401.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrForbidden marks a valid token with an insufficient role. 403.
	ErrForbidden = errors.New("forbidden")
	// ErrConflict marks a uniqueness violation. 409.
	ErrConflict = errors.New("already exists")
	// ErrInsufficientStock marks an order exceeding available stock. 400.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidTransition marks a disallowed status change. 400.
	ErrInvalidTransition = errors.New("invalid status transition")
)

package domain

import "errors"

// Domain errors (no external dependencies). Application code returns these;
// HTTP handlers map them to status codes.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidState       = errors.New("operation not allowed in current state")
	ErrInvalidTransition  = errors.New("illegal status transition")
	ErrConflict           = errors.New("conflict with current state")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access denied")
	ErrEmailAlreadyExists = errors.New("email already registered")
)

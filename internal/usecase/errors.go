package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrConflict              = errors.New("conflicting state")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

package common

import "errors"

var (
	// API-level errors. The HTTP client maps response status codes onto
	// these; callers match with errors.Is.
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("server unavailable")

	// Session errors.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Bootstrap errors.
	ErrAccountNotResolved = errors.New("account not resolved")
)

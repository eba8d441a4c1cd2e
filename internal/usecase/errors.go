package usecase

import "errors"

// Sentinel errors returned by the services; the HTTP layer maps them to
// status codes. Data-quality failures use the dataset error kinds instead.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("not found")
	ErrDependencyUnavailable = errors.New("data source unavailable")
)

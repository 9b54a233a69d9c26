package service

import "errors"

// Service-level error taxonomy. Handlers translate these into HTTP statuses;
// resource absence and foreign ownership deliberately collapse into
// ErrNotFound so callers cannot probe for other admins' resources.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

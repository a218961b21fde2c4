package domain

import "errors"

// Sentinel errors shared across services and repositories. Repositories map
// store-level failures (sql.ErrNoRows, pq constraint codes) onto these;
// anything else is wrapped and surfaces as an infrastructure failure.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrAlreadyExists = errors.New("already exists")
)

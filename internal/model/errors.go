package model

import "errors"

// Sentinel errors shared across store and service layers. Handlers map these
// onto HTTP status codes; everything else surfaces as an internal error.
var (
	// ErrNotFound marks a lookup miss (session, feedback, user).
	ErrNotFound = errors.New("not found")

	// ErrValidation marks rejected input (bad rating, malformed phone, empty id).
	ErrValidation = errors.New("validation error")

	// ErrConflict marks a uniqueness violation, e.g. duplicate feedback for the
	// same trip and user when the caller did not ask for an upsert.
	ErrConflict = errors.New("conflict")
)

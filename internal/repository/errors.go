// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to act on a record owned by someone else, while
// ErrConflict signals that an operation cannot proceed because of
// existing state (a duplicate unique field, a sponsor image that
// already exists, an inquiry claimed by another admin).
package repository

import "errors"

// ErrNotFound is returned when an id does not resolve to a row.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update cannot be
// performed because of conflicting state. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrUserExists is returned when registration collides with an
// existing username or email.
var ErrUserExists = errors.New("user already exists")

// ErrEmailExists is returned when a report-recipient email is
// already subscribed.
var ErrEmailExists = errors.New("email already exists")

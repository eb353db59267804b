package domain

import "errors"

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput is returned when a request fails validation (e.g. an entity
// written without its required identity fields).
var ErrInvalidInput = errors.New("invalid input")

// ErrUnparsable is returned when a stored payload cannot be decoded into its
// entity. Read paths treat it as absence rather than surfacing it.
var ErrUnparsable = errors.New("stored payload unparsable")

// ErrUpstream is returned when the event discovery API responds with a
// non-success status or an undecodable body.
var ErrUpstream = errors.New("upstream api error")

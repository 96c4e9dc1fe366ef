// Package repository implements MySQL persistence for users, tokens,
// items and bids.  This file defines error types that are reused
// across multiple repositories.  These sentinel values allow higher
// layers such as handlers to distinguish between different failure
// scenarios without inspecting driver errors.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a delete or update cannot be
// performed because of conflicting state, such as attempting to
// delete an item that already has bids. Handlers should
// translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrItemNotFound is returned when an item id does not resolve to a
// row in the items table. Handlers should translate this into an
// HTTP 404 response.
var ErrItemNotFound = errors.New("item not found")

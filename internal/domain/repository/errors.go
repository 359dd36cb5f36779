package repository

import "errors"

// Store-level error classes. Infrastructure implementations map driver
// failures onto these; anything else reaches the caller as a storage error.
var (
	// ErrNotFound reports that the requested entity does not exist, or that
	// an update/delete affected zero rows.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports a uniqueness violation (duplicate username or
	// contact detail).
	ErrConflict = errors.New("duplicate value")
)

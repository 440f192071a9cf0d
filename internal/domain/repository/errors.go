package repository

import "errors"

var (
	// ErrNotFound is returned when a row is absent or not owned by the caller.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate")
)

package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write collides with a unique key
	ErrConflict = errors.New("conflict: duplicate key")

	// ErrInvalidInput is returned when a value violates a table constraint
	ErrInvalidInput = errors.New("invalid input")
)

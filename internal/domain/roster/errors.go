package roster

import "errors"

var (
	// ErrMissingColumn indicates the roster sheet lacks a required column.
	ErrMissingColumn = errors.New("roster column missing")
	// ErrEmptyRoster indicates no valid employee rows were found.
	ErrEmptyRoster = errors.New("roster has no valid rows")
	// ErrInvalidInput indicates invalid roster input.
	ErrInvalidInput = errors.New("invalid roster input")
)

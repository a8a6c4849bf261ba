package pto

import "errors"

var (
	// ErrNotConfigured indicates no calendar URL was configured.
	ErrNotConfigured = errors.New("pto calendar not configured")
	// ErrUpstream indicates the calendar responded with a non-2xx status.
	ErrUpstream = errors.New("pto calendar request failed")
	// ErrInvalidRange indicates from is after to.
	ErrInvalidRange = errors.New("invalid date range")
)

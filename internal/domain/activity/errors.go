package activity

import "errors"

// ErrInvalidInput indicates an entry could not be logged as given.
var ErrInvalidInput = errors.New("invalid activity input")

package attendance

import "errors"

var (
	// ErrMultipleWeeks indicates the sign-ins cover more than one week.
	ErrMultipleWeeks = errors.New("sign-ins span more than one week")
	// ErrInvalidPolicy indicates an unusable office-day policy.
	ErrInvalidPolicy = errors.New("invalid attendance policy")
	// ErrInvalidInput indicates a malformed filter or request.
	ErrInvalidInput = errors.New("invalid attendance input")
)

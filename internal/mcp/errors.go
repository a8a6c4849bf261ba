package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/signin-mcp/internal/domain/activity"
	"github.com/ganot/signin-mcp/internal/domain/attendance"
	"github.com/ganot/signin-mcp/internal/domain/pto"
	"github.com/ganot/signin-mcp/internal/domain/roster"
	"github.com/ganot/signin-mcp/internal/domain/signin"
	"github.com/ganot/signin-mcp/internal/repository"
)

// ErrInvalidInput indicates a malformed tool argument.
var ErrInvalidInput = errors.New("invalid input")

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes. It returns nil for errors
// it does not recognize.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case errors.Is(err, signin.ErrInvalidMapping):
		api := &APIError{Code: "INVALID_MAPPING", Message: err.Error(), RecoveryHint: "Pass a mapping naming the sheet's identifier and timestamp headers"}
		var cfgErr *signin.ConfigError
		if errors.As(err, &cfgErr) {
			api.Details = map[string]any{"field": cfgErr.Field, "candidates": cfgErr.Candidates}
		}
		return api
	case errors.Is(err, signin.ErrNoRecords):
		return &APIError{Code: "NO_RECORDS", Message: "no valid sign-in rows", RecoveryHint: "Check parse_errors in details for rejected rows"}
	case errors.Is(err, attendance.ErrMultipleWeeks):
		return &APIError{Code: "MULTIPLE_WEEKS", Message: err.Error(), RecoveryHint: "Upload sign-ins for a single week"}
	case errors.Is(err, attendance.ErrInvalidPolicy):
		return &APIError{Code: "INVALID_POLICY", Message: err.Error(), RecoveryHint: "Fix policy.office_days in the server config"}
	case errors.Is(err, roster.ErrMissingColumn):
		return &APIError{Code: "INVALID_ROSTER", Message: err.Error(), RecoveryHint: "Roster needs FULL_NAME and REQUIRED_DAYS columns"}
	case errors.Is(err, roster.ErrEmptyRoster):
		return &APIError{Code: "EMPTY_ROSTER", Message: "no valid roster rows", RecoveryHint: "Call import_roster with a roster sheet"}
	case errors.Is(err, pto.ErrNotConfigured):
		return &APIError{Code: "PTO_NOT_CONFIGURED", Message: "no PTO calendar configured", RecoveryHint: "Set SIGNIN_PTO_URL"}
	case errors.Is(err, pto.ErrUpstream):
		return &APIError{Code: "PTO_UNAVAILABLE", Message: err.Error(), RecoveryHint: "Retry later or check calendar credentials"}
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, attendance.ErrInvalidInput),
		errors.Is(err, roster.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput),
		errors.Is(err, pto.ErrInvalidRange),
		errors.Is(err, repository.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, repository.ErrConflict):
		return &APIError{Code: "CONFLICT", Message: err.Error()}
	default:
		return nil
	}
}

// mapError converts known errors to *APIError and passes others through.
func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

// toolError carries an APIError as a tool result; its text is the JSON form
// so clients can read code and details.
type toolError struct {
	api *APIError
}

func (e *toolError) Error() string {
	return formatPayload(e.api)
}

func (e *toolError) Unwrap() error {
	return e.api
}

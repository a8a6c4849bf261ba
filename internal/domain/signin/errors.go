package signin

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoRecords indicates no valid sign-in rows were found across all sources.
	ErrNoRecords = errors.New("no valid sign-in records")
	// ErrInvalidMapping indicates the column mapping cannot be applied.
	ErrInvalidMapping = errors.New("invalid column mapping")
)

// ConfigError reports a mapping problem found before any row is processed.
type ConfigError struct {
	Field      string
	Candidates []string
	Reason     string
}

func (e *ConfigError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("mapping %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("mapping %s [%s]: %s", e.Field, strings.Join(e.Candidates, ", "), e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidMapping
}

// Reason classifies a rejected row.
type Reason string

const (
	ReasonMissingColumn    Reason = "missing_column"
	ReasonEmptyIdentifier  Reason = "empty_identifier"
	ReasonBadTimestamp     Reason = "unparsable_timestamp"
	ReasonMalformedRow     Reason = "malformed_row"
	ReasonEmptySource      Reason = "empty_source"
	ReasonUnreadableSource Reason = "unreadable_source"
)

// ParseError describes one rejected row. Row 0 refers to the source as a whole.
type ParseError struct {
	Source int    `json:"source"`
	Name   string `json:"name,omitempty"`
	Row    int    `json:"row"`
	Column string `json:"column,omitempty"`
	Value  string `json:"value,omitempty"`
	Reason Reason `json:"reason"`
}

func (e ParseError) Error() string {
	msg := fmt.Sprintf("source %d row %d: %s", e.Source, e.Row, e.Reason)
	if e.Column != "" {
		msg += fmt.Sprintf(" (column %q)", e.Column)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(": %q", e.Value)
	}
	return msg
}

package scada

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField is returned when a required column is absent from a row
	ErrMissingField = errors.New("missing field")

	// ErrNotNumber is returned when a numeric column does not hold a number
	ErrNotNumber = errors.New("not a number")

	// ErrNotFinite is returned for NaN and infinite values
	ErrNotFinite = errors.New("not a finite number")
)

// ParseError describes a malformed or missing field in an input row.
type ParseError struct {
	Line  int    // 1-based data line, 0 when unknown
	Field string // Column name, empty for structural errors
	Value string // Offending raw value
	Err   error
}

func (e *ParseError) Error() string {
	msg := "parsing record"
	if e.Line > 0 {
		msg = fmt.Sprintf("%s on line %d", msg, e.Line)
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: field '%s'", msg, e.Field)
	}
	if e.Value != "" {
		msg = fmt.Sprintf("%s (value '%s')", msg, e.Value)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

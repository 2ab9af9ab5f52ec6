package calendar

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRange is returned when the end date is before the start date
	ErrInvalidRange = errors.New("end date is before start date")

	// ErrNoClient is returned when holiday inclusion is requested without a holiday API client
	ErrNoClient = errors.New("holiday inclusion requires a holiday API client")
)

// ParseError reports a date string that does not match the configured layout
type ParseError struct {
	Field  string // "start" or "end"
	Value  string
	Layout string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s date %q with layout %q: %v",
		e.Field, e.Value, e.Layout, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

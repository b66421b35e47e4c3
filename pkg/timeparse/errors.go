package timeparse

import "errors"

// Common errors returned by the timeparse package.
var (
	// ErrBadDateShape is returned when text does not match the
	// expected "D.M.YYYY HH:MM" shape.
	ErrBadDateShape = errors.New("date text does not match D.M.YYYY HH:MM")

	// ErrInvalidDate is returned when the fields parse but name an
	// impossible calendar date or clock time.
	ErrInvalidDate = errors.New("invalid calendar date or clock time")
)

// ParseError provides context about a date parsing failure.
type ParseError struct {
	Input string // The text that failed to parse (truncated if too long)
	Err   error  // Underlying error
}

func (e *ParseError) Error() string {
	maxLen := 60
	input := e.Input
	if len(input) > maxLen {
		input = input[:maxLen] + "..."
	}
	return "parse error: " + input + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

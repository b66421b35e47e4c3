package reader

import "errors"

// Common errors returned by the reader.
var (
	// ErrFileNotFound is returned when an input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrFileTooLarge is returned when an input file exceeds the
	// maximum size.
	ErrFileTooLarge = errors.New("file exceeds maximum size")

	// ErrMalformedExport is returned when a usage export row does not
	// have the expected columns.
	ErrMalformedExport = errors.New("malformed usage export")
)

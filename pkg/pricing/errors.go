package pricing

import (
	"errors"
	"time"
)

// Common errors returned by the pricing package.
var (
	// ErrPriceNotFound is returned when the spot index has no price
	// for a record's hour.
	ErrPriceNotFound = errors.New("spot price not found")

	// ErrMalformedSource is returned when a price source is neither a
	// bare entry array nor a recognized envelope.
	ErrMalformedSource = errors.New("malformed price source")

	// ErrNoIndex is returned when a spot policy has no price index.
	ErrNoIndex = errors.New("spot policy requires a price index")
)

// PriceNotFoundError reports the timestamp a spot lookup failed for.
// It is fatal for the cost computation that triggered it.
type PriceNotFoundError struct {
	Timestamp time.Time
}

func (e *PriceNotFoundError) Error() string {
	return "spot price missing for " + e.Timestamp.Format("2.1.2006 15:04 MST")
}

func (e *PriceNotFoundError) Unwrap() error {
	return ErrPriceNotFound
}

// InvalidSourceError reports a price entry whose date could not be
// parsed.
type InvalidSourceError struct {
	Date string // The offending date string
	Err  error  // Underlying error
}

func (e *InvalidSourceError) Error() string {
	return "invalid price entry date " + e.Date + ": " + e.Err.Error()
}

func (e *InvalidSourceError) Unwrap() error {
	return e.Err
}

// UnknownKindError reports an unrecognized policy kind.
type UnknownKindError struct {
	Kind Kind
}

func (e *UnknownKindError) Error() string {
	return "unknown pricing policy kind: " + string(e.Kind)
}

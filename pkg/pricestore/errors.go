package pricestore

import "errors"

// Common errors returned by the pricestore package.
var (
	// ErrStoreClosed is returned when using a closed store.
	ErrStoreClosed = errors.New("price store is closed")

	// ErrCorruptEntry is returned when a cached price has an
	// unexpected encoding.
	ErrCorruptEntry = errors.New("corrupt price cache entry")
)

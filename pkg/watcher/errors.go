package watcher

import "errors"

// Common errors returned by the watcher package.
var (
	// ErrWatcherClosed is returned when using a closed watcher.
	ErrWatcherClosed = errors.New("watcher is closed")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("watcher already started")

	// ErrNotStarted is returned when Stop is called before Start.
	ErrNotStarted = errors.New("watcher not started")

	// ErrPathNotFound is returned when a watch path does not exist.
	ErrPathNotFound = errors.New("watch path not found")
)

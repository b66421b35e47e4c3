// Package watcher monitors the input files of the cost pipeline.
//
// It uses fsnotify to watch the usage export and spot price files,
// with event debouncing so editors and downloads that write in bursts
// trigger one recompute, not many.
//
// Example usage:
//
//	w, err := watcher.New(watcher.Config{
//	    DebounceInterval: 200 * time.Millisecond,
//	}, logger.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Close()
//
//	go func() {
//	    if err := w.Start(ctx, []string{"sahko.csv"}); err != nil {
//	        log.Fatal(err)
//	    }
//	}()
//
//	for event := range w.Events() {
//	    fmt.Printf("changed: %s\n", event.Path)
//	}
package watcher

import (
	"context"
	"time"
)

// Event represents a change to a watched file.
type Event struct {
	// Path is the path of the file that changed.
	Path string

	// Timestamp is when the (debounced) event fired.
	Timestamp time.Time
}

// Watcher monitors files for changes.
type Watcher interface {
	// Start begins watching the given files. Blocks until the context
	// is cancelled or Stop is called.
	Start(ctx context.Context, paths []string) error

	// Stop shuts the watch loop down.
	Stop() error

	// Events returns the debounced change events. The channel stays
	// open; consumers stop on their own context.
	Events() <-chan Event

	// Errors returns non-fatal watch errors.
	Errors() <-chan error

	// Close releases the underlying file system watcher.
	Close() error
}

// Config contains watcher configuration.
type Config struct {
	// DebounceInterval coalesces rapid events for the same file.
	// Default: 200ms.
	DebounceInterval time.Duration
}

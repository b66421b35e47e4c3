package watcher

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jtuomin/sahkolasku/pkg/logger"
)

// fileWatcher implements the Watcher interface using fsnotify.
type fileWatcher struct {
	fsw    *fsnotify.Watcher
	logger logger.Logger
	config Config

	events chan Event
	errors chan error

	mu       sync.Mutex
	running  bool
	closed   bool
	stopped  bool
	stopChan chan struct{}

	debounceMu     sync.Mutex
	debounceTimers map[string]*time.Timer
}

// New creates a file watcher.
func New(cfg Config, log logger.Logger) (Watcher, error) {
	if cfg.DebounceInterval == 0 {
		cfg.DebounceInterval = 200 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &fileWatcher{
		fsw:            fsw,
		logger:         log,
		config:         cfg,
		events:         make(chan Event, 16),
		errors:         make(chan error, 4),
		stopChan:       make(chan struct{}),
		debounceTimers: make(map[string]*time.Timer),
	}, nil
}

// Start implements Watcher.Start.
func (w *fileWatcher) Start(ctx context.Context, paths []string) error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	if w.running {
		w.mu.Unlock()
		return ErrAlreadyStarted
	}
	w.running = true
	w.mu.Unlock()

	watched := make(map[string]bool, len(paths))

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		watched[path] = true
	}

	w.logger.Info("watching input files", "paths", len(paths))

	// The event channels stay open across shutdown; closing them
	// would race with late debounce timers. Consumers stop on their
	// own context.
	defer w.drainTimers()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-w.stopChan:
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounce(event.Name)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			select {
			case w.errors <- err:
			default:
				w.logger.Warn("dropping watch error", "error", err)
			}
		}
	}
}

// debounce schedules an event for a path, resetting any pending timer
// so bursts collapse into one event.
func (w *fileWatcher) debounce(path string) {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	if timer, exists := w.debounceTimers[path]; exists {
		timer.Reset(w.config.DebounceInterval)
		return
	}

	w.debounceTimers[path] = time.AfterFunc(w.config.DebounceInterval, func() {
		w.debounceMu.Lock()
		delete(w.debounceTimers, path)
		w.debounceMu.Unlock()

		select {
		case w.events <- Event{Path: path, Timestamp: time.Now()}:
		case <-w.stopChan:
		}
	})
}

// drainTimers stops all pending debounce timers.
func (w *fileWatcher) drainTimers() {
	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()

	for path, timer := range w.debounceTimers {
		timer.Stop()
		delete(w.debounceTimers, path)
	}
}

// Stop implements Watcher.Stop.
func (w *fileWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return ErrNotStarted
	}
	w.running = false
	w.closeStopChan()

	return nil
}

// closeStopChan unblocks late debounce timers exactly once. Caller
// holds mu.
func (w *fileWatcher) closeStopChan() {
	if !w.stopped {
		w.stopped = true
		close(w.stopChan)
	}
}

// Events implements Watcher.Events.
func (w *fileWatcher) Events() <-chan Event {
	return w.events
}

// Errors implements Watcher.Errors.
func (w *fileWatcher) Errors() <-chan error {
	return w.errors
}

// Close implements Watcher.Close.
func (w *fileWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	w.running = false

	// A debounce timer that fires after shutdown must not block
	// forever on the events channel when Stop was never called.
	w.closeStopChan()

	return w.fsw.Close()
}

// Package watcher reports changes to individual files.
//
// Files are watched through their parent directories so that editors which
// save by writing a new file and renaming it over the old one keep being
// tracked. Rapid changes to the same file can be coalesced with a
// DebouncedWatcher.
package watcher

import (
	"context"
	"errors"
	"time"
)

// Common errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("file is already being watched")
	ErrNotWatching     = errors.New("file is not being watched")
	ErrIsDirectory     = errors.New("path is a directory")
)

// Op represents the type of file system operation.
type Op uint32

const (
	// OpCreate indicates a file was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// String returns a human-readable representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreate:
		return "CREATE"
	case OpWrite:
		return "WRITE"
	case OpRemove:
		return "REMOVE"
	case OpRename:
		return "RENAME"
	default:
		return "UNKNOWN"
	}
}

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// Event represents a change to a watched file.
type Event struct {
	// Path is the absolute path of the file.
	Path string

	// Op is the operation that occurred.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Stats provides watcher status information.
type Stats struct {
	// WatchedFiles is the number of files being watched.
	WatchedFiles int

	// PendingEvents is the number of events waiting to be delivered.
	PendingEvents int

	// TotalEvents is the total number of events delivered.
	TotalEvents int64

	// Errors is the total number of errors encountered.
	Errors int64

	// LastError is the most recent error, if any.
	LastError error
}

// Watcher monitors files for changes.
type Watcher interface {
	// Watch starts watching a file. The file does not need to exist yet.
	// Returns ErrAlreadyWatching if the file is already being watched.
	Watch(path string) error

	// Unwatch stops watching a file.
	// Returns ErrNotWatching if the file isn't being watched.
	Unwatch(path string) error

	// Events returns the channel of file change events.
	// The channel is closed when the watcher is closed.
	Events() <-chan Event

	// Errors returns the channel of watcher errors.
	// The channel is closed when the watcher is closed.
	Errors() <-chan error

	// Close stops the watcher and releases resources.
	Close() error

	// Stats returns watcher statistics.
	Stats() Stats
}

// Config holds watcher configuration options.
type Config struct {
	// DebounceDelay is the delay used by NewDebounced.
	// Default: 100ms
	DebounceDelay time.Duration

	// BufferSize is the size of the event and error channels.
	// Default: 100
	BufferSize int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
		BufferSize:    100,
	}
}

// Option configures a watcher.
type Option func(*Config)

// WithDebounceDelay sets the debounce delay.
func WithDebounceDelay(d time.Duration) Option {
	return func(c *Config) {
		c.DebounceDelay = d
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) Option {
	return func(c *Config) {
		c.BufferSize = size
	}
}

// NewDebounced creates a file watcher whose events are debounced.
func NewDebounced(opts ...Option) (*DebouncedWatcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	fw, err := NewFileWatcher(opts...)
	if err != nil {
		return nil, err
	}
	return NewDebouncedWatcher(fw, config.DebounceDelay), nil
}

// Run delivers events and errors from w to the handlers until ctx is
// cancelled or w is closed. Either handler may be nil.
func Run(ctx context.Context, w Watcher, onEvent func(Event), onError func(error)) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.Events():
			if !ok {
				return
			}
			if onEvent != nil {
				onEvent(event)
			}
		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			if onError != nil {
				onError(err)
			}
		}
	}
}

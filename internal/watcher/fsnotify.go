package watcher

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher implements Watcher using fsnotify.
type FileWatcher struct {
	mu sync.RWMutex

	watcher *fsnotify.Watcher
	config  Config

	// Watched files and the number of watched files per directory.
	files map[string]bool
	dirs  map[string]int

	events chan Event
	errors chan error

	totalEvents atomic.Int64
	totalErrors atomic.Int64
	lastError   error

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewFileWatcher creates a new fsnotify-based file watcher.
func NewFileWatcher(opts ...Option) (*FileWatcher, error) {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	bufSize := config.BufferSize
	if bufSize <= 0 {
		bufSize = 100
	}

	w := &FileWatcher{
		watcher: fsw,
		config:  config,
		files:   make(map[string]bool),
		dirs:    make(map[string]int),
		events:  make(chan Event, bufSize),
		errors:  make(chan error, bufSize),
		closeCh: make(chan struct{}),
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch starts watching a file.
func (w *FileWatcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if info, err := os.Stat(absPath); err == nil && info.IsDir() {
		return ErrIsDirectory
	}
	if w.files[absPath] {
		return ErrAlreadyWatching
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 0 {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}

	w.dirs[dir]++
	w.files[absPath] = true
	return nil
}

// Unwatch stops watching a file.
func (w *FileWatcher) Unwatch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if !w.files[absPath] {
		return ErrNotWatching
	}

	dir := filepath.Dir(absPath)
	if w.dirs[dir] == 1 {
		if err := w.watcher.Remove(dir); err != nil {
			return err
		}
		delete(w.dirs, dir)
	} else {
		w.dirs[dir]--
	}

	delete(w.files, absPath)
	return nil
}

// Events returns the event channel.
func (w *FileWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel.
func (w *FileWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher.
func (w *FileWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()

	close(w.events)
	close(w.errors)

	return w.watcher.Close()
}

// Stats returns watcher statistics.
func (w *FileWatcher) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return Stats{
		WatchedFiles:  len(w.files),
		PendingEvents: len(w.events),
		TotalEvents:   w.totalEvents.Load(),
		Errors:        w.totalErrors.Load(),
		LastError:     w.lastError,
	}
}

// IsWatching returns true if the file is being watched.
func (w *FileWatcher) IsWatching(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return w.files[absPath]
}

// processLoop handles incoming fsnotify events.
func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.recordError(err)
			w.sendError(err)
		}
	}
}

// handleFSEvent converts an fsnotify event for a watched file and sends it.
func (w *FileWatcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}

	w.mu.RLock()
	watched := w.files[filepath.Clean(fsEvent.Name)]
	w.mu.RUnlock()
	if !watched {
		return
	}

	w.sendEvent(Event{
		Path:      filepath.Clean(fsEvent.Name),
		Op:        op,
		Timestamp: time.Now(),
	})
}

// convertOp converts fsnotify.Op to watcher.Op. Permission changes are
// not reported.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	return op
}

// sendEvent sends an event to the output channel.
func (w *FileWatcher) sendEvent(event Event) {
	select {
	case w.events <- event:
		w.totalEvents.Add(1)
	default:
		w.recordError(errors.New("event channel full, dropping event"))
	}
}

// sendError sends an error to the output channel.
func (w *FileWatcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}

// recordError records an error in stats.
func (w *FileWatcher) recordError(err error) {
	w.totalErrors.Add(1)
	w.mu.Lock()
	w.lastError = err
	w.mu.Unlock()
}

var _ Watcher = (*FileWatcher)(nil)

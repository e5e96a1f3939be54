package store

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"trustview/internal/logging"
)

// DefaultDebounce collapses the burst of writes SQLite makes per commit.
const DefaultDebounce = 300 * time.Millisecond

// Watcher signals when an Orchestrator database changes on disk. It watches
// the containing directory so writes to the -wal and -journal companions
// are seen too.
type Watcher struct {
	mu          sync.Mutex
	watcher     *fsnotify.Watcher
	dir         string
	base        string
	debounceDur time.Duration
	pending     time.Time
	changes     chan struct{}
	stopCh      chan struct{}
	doneCh      chan struct{}
	running     bool
	events      int
}

// NewWatcher creates a watcher for the database at path.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Watcher{
		watcher:     fw,
		dir:         filepath.Dir(abs),
		base:        filepath.Base(abs),
		debounceDur: debounce,
		changes:     make(chan struct{}, 1),
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

// Changes delivers at most one pending signal per debounce window.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.dir); err != nil {
		logging.StoreWarn("Watcher: cannot watch %s: %v", w.dir, err)
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return err
	}
	logging.Store("Watcher: watching %s in %s", w.base, w.dir)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		logging.Get(logging.CategoryStore).Error("Watcher: error closing watcher: %v", err)
	}
	logging.Store("Watcher: stopped")
}

// EventCount returns how many relevant filesystem events were seen.
func (w *Watcher) EventCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.events
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(w.debounceDur / 3)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.StoreWarn("Watcher error: %v", err)

		case <-tick.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !strings.HasPrefix(filepath.Base(event.Name), w.base) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	logging.Get(logging.CategoryStore).Debug("Watcher: %s %s", event.Op, event.Name)
	w.mu.Lock()
	w.events++
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounceDur {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	select {
	case w.changes <- struct{}{}:
	default:
	}
}

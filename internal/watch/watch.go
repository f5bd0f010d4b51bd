// Package watch reloads a level file whenever it changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/borkshop/corridor/internal/level"
	"github.com/borkshop/corridor/internal/logger"
)

// DefaultDebounce is how long a file must stay quiet before it is reloaded;
// editors often write a file in several steps.
const DefaultDebounce = 250 * time.Millisecond

// Watcher watches one level file. It watches the file's directory rather
// than the file, so that editors which save by renaming a new file into
// place are still seen.
type Watcher struct {
	// Debounce overrides DefaultDebounce if positive.
	Debounce time.Duration
	// Load parses the changed file; defaults to level.Load.
	Load func(path string) (*level.Level, error)
	// OnReload receives each successfully loaded level, and OnError each
	// failure; both are called from the watcher goroutine.
	OnReload func(*level.Level)
	OnError  func(error)

	mu      sync.Mutex
	path    string
	watcher *fsnotify.Watcher
	pending time.Time
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	log     *logrus.Entry
}

// New returns a watcher for the level file at path.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %q", path)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "creating file watcher")
	}
	return &Watcher{
		path:    abs,
		watcher: fw,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
		log:     logger.Component("watch").WithField("path", abs),
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string { return w.path }

// Start begins watching. It does not block; call Stop to end the watch.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		return errors.Wrap(err, "watching level directory")
	}
	w.log.Info("watching level file")

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.log.WithError(err).Warn("closing file watcher")
	}
}

func (w *Watcher) debounce() time.Duration {
	if w.Debounce > 0 {
		return w.Debounce
	}
	return DefaultDebounce
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounce() / 2)
	defer ticker.Stop()

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
			w.log.WithError(err).Warn("file watcher error")

		case now := <-ticker.C:
			w.maybeReload(now)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	w.log.WithField("op", event.Op.String()).Debug("level file changed")
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) maybeReload(now time.Time) {
	w.mu.Lock()
	pending := w.pending
	if pending.IsZero() || now.Sub(pending) < w.debounce() {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	load := w.Load
	if load == nil {
		load = level.Load
	}
	lvl, err := load(w.path)
	if err == nil {
		err = lvl.Validate()
	}
	if err != nil {
		w.log.WithError(err).Warn("level reload failed")
		if w.OnError != nil {
			w.OnError(err)
		}
		return
	}
	if w.OnReload != nil {
		w.OnReload(lvl)
	}
}

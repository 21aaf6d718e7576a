package files

import (
	"context"
	"io/fs"
	"path/filepath"
	"sync"
	"sync/atomic"

	"fsbot/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher invalidates an Index whenever entries are created, removed or
// renamed anywhere under the watched tree. fsnotify is not recursive, so
// every directory is added individually and new directories are picked up
// as they appear.
type Watcher struct {
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	index   *Index
	root    string
	watched map[string]bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool

	invalidations atomic.Int64
}

// NewWatcher creates a watcher feeding the given index.
func NewWatcher(index *Index) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsw:     fsw,
		index:   index,
		watched: make(map[string]bool),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start watches the tree under root. Non-blocking.
func (w *Watcher) Start(ctx context.Context, root string) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.Rewatch(root); err != nil {
		logging.Get(logging.CategoryWorld).Warn("watcher: initial watch of %s failed: %v", root, err)
	}

	go w.run(ctx)
	return nil
}

// Rewatch drops the current watch set and watches the tree under root.
func (w *Watcher) Rewatch(root string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for dir := range w.watched {
		_ = w.fsw.Remove(dir)
	}
	w.watched = make(map[string]bool)
	w.root = root

	return w.addTreeLocked(root)
}

// addTreeLocked adds dir and every non-skipped subdirectory.
func (w *Watcher) addTreeLocked(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && w.index.skip(d.Name()) {
			return fs.SkipDir
		}
		if w.watched[p] {
			return nil
		}
		if err := w.fsw.Add(p); err != nil {
			logging.WorldDebug("watcher: cannot watch %s: %v", p, err)
			return nil
		}
		w.watched[p] = true
		return nil
	})
}

// Stop stops the watcher and waits for its loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.fsw.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.fsw.Close(); err != nil {
		logging.Get(logging.CategoryWorld).Error("watcher: error closing: %v", err)
	}
	logging.World("watcher: stopped")
}

// Invalidations returns how many events have invalidated the index.
func (w *Watcher) Invalidations() int64 {
	return w.invalidations.Load()
}

// WatchedDirs returns the number of directories being watched.
func (w *Watcher) WatchedDirs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watched)
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Get(logging.CategoryWorld).Error("watcher error: %v", err)
			// Events may have been dropped.
			w.index.Invalidate()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	// Writes and chmods do not change names, so the index stays valid.
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	logging.WorldDebug("watcher: %s %s", event.Op, event.Name)
	w.index.Invalidate()
	w.invalidations.Add(1)

	if event.Has(fsnotify.Create) {
		w.mu.Lock()
		if err := w.addTreeLocked(event.Name); err != nil {
			// Plain files land here too; WalkDir on a file visits only the file.
			logging.WorldDebug("watcher: add %s: %v", event.Name, err)
		}
		w.mu.Unlock()
	}
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.mu.Lock()
		delete(w.watched, event.Name)
		w.mu.Unlock()
	}
}

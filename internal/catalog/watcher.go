package catalog

import (
	"context"
	"sync"
	"time"

	"patternpick/internal/logging"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the patterns root for changes and reloads the store after
// a quiet period. Rapid event bursts (editor saves, git checkouts) collapse
// into a single reload.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	store    *Store
	debounce time.Duration
	pending  bool
	lastEvt  time.Time
	onReload func()
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher for the store's root. onReload is invoked
// after every successful reload; it may be nil.
func NewWatcher(store *Store, debounce time.Duration, onReload func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	return &Watcher{
		watcher:  fw,
		store:    store,
		debounce: debounce,
		onReload: onReload,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the event loop runs in a goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(w.store.Root()); err != nil {
		logging.CatalogWarn("watch failed for %s: %v", w.store.Root(), err)
	} else {
		logging.Catalog("watching %s", w.store.Root())
	}

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh
	if err := w.watcher.Close(); err != nil {
		logging.CatalogError("error closing watcher: %v", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := time.NewTicker(100 * time.Millisecond)
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
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logging.CatalogDebug("fs event %s on %s", event.Op, event.Name)
			w.mu.Lock()
			w.pending = true
			w.lastEvt = time.Now()
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.CatalogError("watcher error: %v", err)

		case <-tick.C:
			w.mu.Lock()
			due := w.pending && time.Since(w.lastEvt) >= w.debounce
			if due {
				w.pending = false
			}
			w.mu.Unlock()
			if !due {
				continue
			}
			if err := w.store.Reload(); err != nil {
				logging.CatalogError("reload failed: %v", err)
				continue
			}
			if w.onReload != nil {
				w.onReload()
			}
		}
	}
}

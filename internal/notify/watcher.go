package notify

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval coalesces the burst of fsnotify events a single SQLite
// commit produces into one bus event.
const debounceInterval = 250 * time.Millisecond

// Watcher observes the store's database file and publishes TopicStoreChanged
// when another process writes to it. The originating process never sees its
// own in-process broadcast echoed here more than once thanks to debouncing,
// and consumers tolerate spurious refreshes anyway.
type Watcher struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	bus     *Bus
	dbPath  string
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewWatcher creates a watcher for the database file at dbPath, publishing
// to bus. Call Start to begin watching.
func NewWatcher(dbPath string, bus *Bus) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		watcher: fw,
		bus:     bus,
		dbPath:  dbPath,
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watch loop runs in a goroutine
// until Stop is called or ctx is done.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	// Watch the directory, not the file: SQLite writes through journal
	// files and renames, which replace the watched inode.
	dir := filepath.Dir(w.dbPath)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}
	slog.Debug("notify: watching store directory", "dir", dir)

	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the loop to exit.
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
	w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	var timer *time.Timer
	var timerCh <-chan time.Time

	base := filepath.Base(w.dbPath)
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
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			// Journal and WAL side files share the db file's prefix.
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceInterval)
				timerCh = timer.C
			} else {
				timer.Reset(debounceInterval)
			}
		case <-timerCh:
			timer = nil
			timerCh = nil
			w.bus.Publish(Event{Topic: TopicStoreChanged})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("notify: watcher error", "error", err)
		}
	}
}

package reel

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for file watch
// events.
const DefaultWatchDebounce = 500 * time.Millisecond

// RerunWatcher monitors a source file and requests a scene rerun when it
// changes. It never touches the scene graph: the only thing it does is
// enqueue a rerun request, which the render loop applies between frames.
type RerunWatcher struct {
	watcher  *fsnotify.Watcher
	filePath string
	debounce time.Duration
	scene    *Scene

	stopCh    chan struct{}
	stoppedCh chan struct{}
	mu        sync.Mutex
	running   bool
	stopped   bool
}

// NewRerunWatcher creates a watcher that calls scene.RequestRerun whenever
// filePath changes (after debouncing). Pass 0 for the default debounce.
func NewRerunWatcher(scene *Scene, filePath string, debounce time.Duration) (*RerunWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}

	// Watch the directory containing the file, not the file itself. This
	// handles editors that atomically rename files (vim, emacs, etc.).
	dir := filepath.Dir(filePath)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	return &RerunWatcher{
		watcher:   watcher,
		filePath:  filePath,
		debounce:  debounce,
		scene:     scene,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}, nil
}

// Start begins watching in a goroutine. A watcher cannot be restarted:
// Start after Stop is a no-op.
func (w *RerunWatcher) Start() {
	w.mu.Lock()
	if w.running || w.stopped {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	go w.watchLoop()
}

// Stop stops the watcher, waits for its goroutine to exit, and releases
// the underlying file watch. Safe to call without Start and to call twice.
func (w *RerunWatcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	running := w.running
	w.mu.Unlock()

	if !running {
		w.watcher.Close()
		return
	}
	close(w.stopCh)
	<-w.stoppedCh
}

// watchLoop is the event loop: filter events for the watched file, debounce
// bursts, then enqueue a single rerun request.
func (w *RerunWatcher) watchLoop() {
	defer close(w.stoppedCh)
	defer w.watcher.Close()

	absPath, _ := filepath.Abs(w.filePath)
	baseName := filepath.Base(w.filePath)

	var debounceTimer *time.Timer
	var debounceCh <-chan time.Time

	for {
		select {
		case <-w.stopCh:
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			w.mu.Lock()
			w.running = false
			w.mu.Unlock()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			eventBase := filepath.Base(event.Name)
			eventAbs, _ := filepath.Abs(event.Name)
			if eventBase != baseName && eventAbs != absPath {
				continue
			}
			// Write/create/rename covers plain saves and atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(w.debounce)
			debounceCh = debounceTimer.C

		case <-debounceCh:
			w.scene.RequestRerun()
			debounceTimer = nil
			debounceCh = nil

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logf("watch %s: %v", w.filePath, err)
		}
	}
}

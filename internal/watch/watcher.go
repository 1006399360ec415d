// Package watch monitors the substitution manifest and re-runs generation on
// change, debouncing editor save bursts.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for a change burst to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher monitors one file and triggers a callback when it changes.
type Watcher struct {
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
	target    string
	onChange  func() error
	log       *zap.Logger
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

// NewWatcher creates a watcher for path. The callback runs after changes
// settle; its error is logged, not fatal, so one broken save never kills the
// watch loop.
func NewWatcher(path string, onChange func() error, log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if log == nil {
		log = zap.NewNop()
	}

	w := &Watcher{
		watcher:  fsw,
		target:   filepath.Clean(path),
		onChange: onChange,
		log:      log,
		stopChan: make(chan struct{}),
	}
	w.debouncer = NewDebouncer(DefaultDebounce, func() {
		if err := w.onChange(); err != nil {
			w.log.Warn("change handler failed", zap.Error(err))
		}
	})
	return w, nil
}

// Start begins watching. Watching the directory instead of the file survives
// editors that replace the file on save.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.target)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Stop terminates the watch loop and releases the underlying watcher.
func (w *Watcher) Stop() error {
	close(w.stopChan)
	w.wg.Wait()
	w.debouncer.Stop()
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("manifest changed", zap.String("path", event.Name))
			w.debouncer.Trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		case <-w.stopChan:
			return
		}
	}
}

// Debouncer coalesces a burst of triggers into one callback after a quiet
// interval.
type Debouncer struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	callback func()
}

// NewDebouncer creates a debouncer firing callback once per settled burst.
func NewDebouncer(interval time.Duration, callback func()) *Debouncer {
	return &Debouncer{interval: interval, callback: callback}
}

// Trigger notes a change and (re)arms the quiet-interval timer.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.callback)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

package app

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay collapses the burst of events editors emit for one save.
const reloadDelay = 100 * time.Millisecond

// Watcher signals when the config file changes on disk.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	changes  chan struct{}
	errs     chan error
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches the directory containing path, since editors often
// replace the file by rename rather than writing it in place.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, err
	}
	w := &Watcher{
		watcher: fw,
		path:    abs,
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 1),
		stopCh:  make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Changes receives one value per settled burst of changes.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Errors receives watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watchLoop() {
	debounceTimer := time.NewTimer(reloadDelay)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}

	for {
		select {
		case <-w.stopCh:
			debounceTimer.Stop()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			debounceTimer.Reset(reloadDelay)

		case <-debounceTimer.C:
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

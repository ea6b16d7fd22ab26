package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the burst of events an editor produces on save.
const debounceDelay = 150 * time.Millisecond

// Watcher watches the config file and signals after it changes on disk.
// It watches the directory, not the file, so atomic rename-based saves
// (including Save) are seen.
type Watcher struct {
	path     string
	watcher  *fsnotify.Watcher
	changeCh chan struct{}

	closeCh   chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWatcher starts watching path. The parent directory is created if
// needed so a config written later is still picked up.
func NewWatcher(path string) (*Watcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		watcher:  fw,
		changeCh: make(chan struct{}, 1),
		closeCh:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, w.notify)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			configLog.Warn("config_watcher_error", slog.String("error", err.Error()))
		}
	}
}

// notify sends without blocking; one pending signal is enough.
func (w *Watcher) notify() {
	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}

// Changes receives one value per (debounced) change of the config file.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changeCh
}

// Close stops watching. Safe to call multiple times.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.closeCh)
		_ = w.watcher.Close()
		w.wg.Wait()
	})
}

package watcher

import (
	"deployer/internal/logger"
	"deployer/internal/model"
	"deployer/internal/pipeline"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher reports changes to a single file. The parent directory is
// subscribed so that editors replacing the file by rename are still seen.
// For a symlink both the link's and the target's directories are watched.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	resolved string
	rawCh    chan model.ChangeEvent
	eventCh  <-chan model.ChangeEvent
	doneCh   chan struct{}
	stopOnce sync.Once
}

func New(path string, bufferSize int) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(absPath)
	if err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return nil, fmt.Errorf("file not found: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", absPath)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, dir := range watchDirs(absPath, resolved) {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	w := &Watcher{
		fw:       fw,
		path:     absPath,
		resolved: resolved,
		rawCh:    make(chan model.ChangeEvent, bufferSize),
		doneCh:   make(chan struct{}),
	}
	filtered := pipeline.FilterPath(w.rawCh, w.doneCh, absPath, resolved)
	w.eventCh = pipeline.Queue(filtered, w.doneCh, bufferSize)

	go w.run()

	logger.Log.Info("watcher started",
		zap.String("file", absPath),
		zap.String("resolved", resolved))
	return w, nil
}

func watchDirs(path, resolved string) []string {
	dir := filepath.Dir(path)
	resolvedDir := filepath.Dir(resolved)
	if dir == resolvedDir {
		return []string{dir}
	}

	return []string{dir, resolvedDir}
}

func (w *Watcher) run() {
	defer close(w.rawCh)

	for {
		select {
		case <-w.doneCh:
			logger.Log.Debug("watcher stopping")
			return

		case fsEvent, ok := <-w.fw.Events:
			if !ok {
				return
			}

			event := model.ChangeEvent{
				Type:      toEventType(fsEvent.Op),
				Path:      fsEvent.Name,
				Timestamp: time.Now(),
			}

			if !w.emit(event) {
				return
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}

			event := model.ChangeEvent{
				Type:      model.EventError,
				Path:      w.path,
				Timestamp: time.Now(),
				Err:       err,
			}

			if !w.emit(event) {
				return
			}
		}
	}
}

func (w *Watcher) emit(event model.ChangeEvent) bool {
	select {
	case w.rawCh <- event:
		return true
	case <-w.doneCh:
		return false
	}
}

// Events is closed after Stop, or when the underlying notifier goes away.
// Events still queued at Stop are discarded.
func (w *Watcher) Events() <-chan model.ChangeEvent {
	return w.eventCh
}

func (w *Watcher) Path() string {
	return w.path
}

func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.doneCh)
		_ = w.fw.Close()
	})
}

func toEventType(op fsnotify.Op) model.EventType {
	switch {
	case op.Has(fsnotify.Create):
		return model.EventCreate
	case op.Has(fsnotify.Write):
		return model.EventModify
	default:
		return model.EventOther
	}
}

// Package watcher re-runs work whenever a single file changes on disk.
//
// The import command uses it in --watch mode to regenerate components
// every time the exported interchange file is saved again.
package watcher

import (
	"context"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches one file and invokes a callback once a burst of
// writes has settled. Editors often replace files by renaming a
// temporary copy over them, which drops a watch held on the file
// itself, so the parent directory is watched and events are filtered
// by path.
type Watcher struct {
	path         string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	stopCh       chan struct{}
	stopOnce     sync.Once
}

// New creates a watcher for path. The parent directory must exist.
func New(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		path:         filepath.Clean(abs),
		watcher:      fsw,
		debounceTime: 500 * time.Millisecond,
		stopCh:       make(chan struct{}),
	}, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is cancelled or Close is called, invoking
// onChange after each settled burst of writes to the watched file.
// The callback runs on the watch goroutine, so a slow callback delays
// later events but never loses the final state of the file.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var debounceTimer *time.Timer
	changedCh := make(chan struct{}, 1)

	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-w.stopCh:
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.matches(event) {
				continue
			}
			// Push the quiet period out past this event. A timer that
			// already fired has queued its signal, and changedCh holds
			// at most one.
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounceTime, func() {
				select {
				case changedCh <- struct{}{}:
				default:
				}
			})

		case <-changedCh:
			onChange()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

// Close stops a running Run and releases the watch handle. Safe to
// call more than once.
func (w *Watcher) Close() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return filepath.Clean(name) == w.path
}

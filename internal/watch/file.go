package watch

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/grindlemire/go-panel/internal/debug"
)

// FileWatcher calls its handler on the loop after path was written,
// created or replaced. Bursts of changes within the debounce window
// produce a single call.
type FileWatcher struct {
	path      string
	fsw       *fsnotify.Watcher
	debouncer *Debouncer
	handler   func(path string)
}

// OnFileChange watches path. The parent directory is watched so that editors
// replacing the file through a rename are noticed.
func OnFileChange(path string, handler func(path string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", path, err)
	}
	return &FileWatcher{
		path:      abs,
		fsw:       fsw,
		debouncer: NewDebouncer(0),
		handler:   handler,
	}, nil
}

// Start implements Watcher.
func (w *FileWatcher) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		defer w.fsw.Close()
		defer w.debouncer.Cancel()
		for {
			select {
			case <-stopCh:
				return
			case ev, ok := <-w.fsw.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
					continue
				}
				debug.Log("FileWatcher: %v", ev)
				w.debouncer.Trigger(func() {
					select {
					case eventQueue <- func() { w.handler(w.path) }:
					case <-stopCh:
					}
				})
			case err, ok := <-w.fsw.Errors:
				if !ok {
					return
				}
				debug.Log("FileWatcher: %s: %v", w.path, err)
			}
		}
	}()
}

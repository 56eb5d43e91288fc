package shaders

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/trekanten/engine/core"
)

// Watcher reports changed compiled shaders so callers can rebuild the
// pipelines that reference them.
type Watcher struct {
	watcher *fsnotify.Watcher
	changed chan string
	done    chan struct{}
}

// NewWatcher watches dir for writes to .spv files.
func NewWatcher(dir string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create shader watcher")
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, errors.Wrapf(err, "failed to watch shader directory %q", dir)
	}

	w := &Watcher{
		watcher: fsw,
		changed: make(chan string, 16),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Changed delivers paths of shaders that were rewritten on disk.
func (w *Watcher) Changed() <-chan string {
	return w.changed
}

func (w *Watcher) run() {
	defer close(w.changed)
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".spv") {
				continue
			}
			select {
			case w.changed <- event.Name:
			default:
				// Drop when nobody is draining; the next write re-notifies.
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			core.LogWarn("shader watcher error: %s", err)
		}
	}
}

func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}

// Package watch notifies a reload.Coordinator when files change under the
// active kit directory, using fsnotify rather than polling.
package watch

import (
	"log"

	"github.com/fsnotify/fsnotify"
)

// Coordinator is the subset of reload.Coordinator this package depends on,
// kept narrow so tests can supply a fake.
type Coordinator interface {
	NotifyChange(dir string)
}

// Watcher wraps an fsnotify.Watcher scoped to a single kit directory.
type Watcher struct {
	fsw *fsnotify.Watcher
	dir string
	c   Coordinator
	done chan struct{}
}

// New starts watching dir and forwards Write/Create/Remove/Rename events to
// c.NotifyChange. Call Close to stop.
func New(dir string, c Coordinator) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{fsw: fsw, dir: dir, c: c, done: make(chan struct{})}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	const relevant = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename
	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if event.Op&relevant != 0 {
				w.c.NotifyChange(w.dir)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)
		case <-w.done:
			return
		}
	}
}

// Close stops the watcher and releases its OS resources.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

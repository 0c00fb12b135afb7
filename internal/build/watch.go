package build

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher invokes a callback for source files that change on disk.
// Rapid successive writes to the same file coalesce into one
// notification once the file settles.
type Watcher struct {
	fs        *fsnotify.Watcher
	done      chan struct{}
	closeOnce sync.Once
}

const settleDelay = 100 * time.Millisecond

// Watch watches a directory and calls fn with the path of every source
// file written or created under it, from a single goroutine.
func Watch(dir string, fn func(path string)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &Watcher{fs: fsw, done: make(chan struct{})}
	go w.loop(fn)
	return w, nil
}

// Errors exposes the underlying watcher's error stream.
func (w *Watcher) Errors() <-chan error { return w.fs.Errors }

// Close stops the event loop and releases the OS watch.
func (w *Watcher) Close() error {
	w.closeOnce.Do(func() { close(w.done) })
	return w.fs.Close()
}

func (w *Watcher) loop(fn func(string)) {
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(settleDelay / 2)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 && IsSourceFile(ev.Name) {
				pending[ev.Name] = time.Now()
			}
		case now := <-ticker.C:
			for path, stamp := range pending {
				if now.Sub(stamp) >= settleDelay {
					delete(pending, path)
					fn(path)
				}
			}
		}
	}
}

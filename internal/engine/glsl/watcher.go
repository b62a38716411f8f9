package glsl

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/kerzenlicht/viewer/internal/logger"
)

// debounce groups the burst of events editors emit for a single save.
const debounce = 100 * time.Millisecond

// Watcher reports changes to a shader source file. It watches the parent
// directory so that editors replacing the file by rename are seen too.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	changes chan string
	done    chan struct{}
	log     *zap.Logger
}

// Watch starts watching path.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		changes: make(chan string, 1),
		done:    make(chan struct{}),
		log:     logger.Named("shader-watch"),
	}
	go w.run()
	return w, nil
}

// Changes delivers the watched path after it was written, created or
// renamed into place. At most one notification is buffered.
func (w *Watcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	var timer <-chan time.Time
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				timer = time.After(debounce)
			}
		case <-timer:
			timer = nil
			select {
			case w.changes <- w.path:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

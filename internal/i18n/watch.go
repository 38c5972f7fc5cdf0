package i18n

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a bundle when dictionaries in an override directory change.
type Watcher struct {
	watcher  *fsnotify.Watcher
	bundle   *Bundle
	debounce time.Duration
	done     chan struct{}
}

// Watch starts watching dir and reloads b on every JSON create/write/remove.
// Bursts of events within debounce are collapsed into one reload. The
// watcher stops when ctx is done or Close is called.
func Watch(ctx context.Context, b *Bundle, dir string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		watcher:  fw,
		bundle:   b,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go w.run(ctx)
	return w, nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.done)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".json") {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			timer = time.After(w.debounce)
		case <-timer:
			timer = nil
			if err := w.bundle.Load(); err != nil {
				slog.Warn("could not reload i18n dictionaries", "error", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("i18n watcher error", "error", err)
		}
	}
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}

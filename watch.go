package wirevis

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher turns file changes in a template directory into reload requests.
// Requests coalesce: at most one is pending at a time.
type Watcher struct {
	watcher *fsnotify.Watcher
	ext     string
	log     *slog.Logger

	reload chan struct{}
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

func NewWatcher(dir, ext string, log *slog.Logger) (*Watcher, error) {
	if log == nil {
		log = slog.Default()
	}
	if ext == "" {
		ext = DefaultTemplateExt
	} else if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return &Watcher{
		watcher: fw,
		ext:     ext,
		log:     log,
		reload:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}, nil
}

// Reloads delivers one value per burst of relevant changes.
func (w *Watcher) Reloads() <-chan struct{} {
	return w.reload
}

// Run forwards events until ctx is cancelled or Close is called.
func (w *Watcher) Run(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case <-w.done:
				return
			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if w.relevant(ev) {
					w.log.Debug("template change", "path", ev.Name, "op", ev.Op.String())
					w.request()
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn("template watcher", "err", err)
			}
		}
	}()
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), w.ext) {
		return false
	}
	return ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

func (w *Watcher) request() {
	select {
	case w.reload <- struct{}{}:
	default:
	}
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

package kv

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/lifecycle/pkg/core/worker"
	"github.com/fsnotify/fsnotify"
)

// watchWorker observes the storage directory for external changes to
// watched keys and invokes the notify callback, debounced. It lets a
// read-side store reload when another process rewrites the snapshot.
type watchWorker struct {
	*worker.BaseWorker
	store     *File
	keys      map[string]bool
	notify    func(key string)
	logger    *slog.Logger
	watcher   *fsnotify.Watcher
	debouncer *debouncer
	cancel    context.CancelFunc
}

func newWatchWorker(store *File, keys []string, notify func(key string)) *watchWorker {
	watched := make(map[string]bool, len(keys))
	for _, k := range keys {
		watched[k] = true
	}
	return &watchWorker{
		BaseWorker: worker.NewBaseWorker("kv-watcher"),
		store:      store,
		keys:       watched,
		notify:     notify,
		logger:     store.logger,
	}
}

func (w *watchWorker) Start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	status := w.State().Status
	if status != worker.StatusCreated && status != worker.StatusPending {
		return fmt.Errorf("watcher already started (status: %s)", status)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(w.store.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", w.store.dir, err)
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(50 * time.Millisecond)

	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.SetStatus(worker.StatusRunning)
	return w.StartFunc(runCtx, w.run)
}

func (w *watchWorker) Stop(ctx context.Context) error {
	if w.cancel != nil {
		w.StopRequested = true
		w.cancel()
	}
	return w.BaseWorker.Stop(ctx)
}

func (w *watchWorker) State() worker.State {
	return w.ExportState(func(s *worker.State) {
		s.Metadata = map[string]string{
			worker.MetadataType: string(worker.TypeGoroutine),
		}
	})
}

func (w *watchWorker) run(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.debouncer.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if w.StopRequested || ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			if w.logger != nil {
				w.logger.Error("fsnotify error", "error", err)
			}
		}
	}
}

func (w *watchWorker) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	key, ok := w.store.keyForFile(event.Name)
	if !ok || !w.keys[key] {
		return
	}

	if w.logger != nil {
		w.logger.Debug("storage key changed on disk", "key", key, "op", event.Op.String())
	}
	w.debouncer.add(key, func() {
		w.notify(key)
	})
}

// Watch invokes notify (debounced) whenever one of the given keys is
// created, rewritten, or removed on disk by anyone — including other
// processes. The watcher stops when ctx is cancelled. Intended for
// read-side observers; a store that is actively mutating should not
// reload on its own writes.
func (f *File) Watch(ctx context.Context, keys []string, notify func(key string)) error {
	w := newWatchWorker(f, keys, notify)
	return w.Start(ctx)
}

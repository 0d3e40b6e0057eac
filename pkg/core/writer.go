package core

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"
)

// writeOp is one unit of work for the persistence writer. A nil
// snapshot means "remove the key" (full reset) instead of "overwrite
// the snapshot". done, when non-nil, receives the outcome exactly once;
// a superseded op is released with nil.
type writeOp struct {
	snapshot []byte
	done     chan error
}

// writer serializes durable-storage writes behind a single-slot,
// latest-wins queue. Mutations always enqueue the full current
// snapshot, so replacing a pending op loses nothing: the newer snapshot
// already includes the older one's changes. Because at most one storage
// call is in flight at a time, a late-completing write can never
// clobber a newer snapshot with a stale one.
type writer struct {
	storage Storage
	key     string
	logger  *slog.Logger

	mu      sync.Mutex
	pending *writeOp

	kick     chan struct{}
	finished chan struct{}
}

func newWriter(storage Storage, key string, logger *slog.Logger) *writer {
	return &writer{
		storage:  storage,
		key:      key,
		logger:   logger,
		kick:     make(chan struct{}, 1),
		finished: make(chan struct{}),
	}
}

// start launches the writer goroutine. It runs until ctx is cancelled,
// draining any pending op before exiting.
func (w *writer) start(ctx context.Context) {
	lifecycle.Go(ctx, w.run)
}

func (w *writer) run(ctx context.Context) error {
	defer close(w.finished)
	for {
		select {
		case <-ctx.Done():
			// Final drain so a write enqueued just before shutdown
			// still reaches storage.
			w.flush(context.Background())
			return nil
		case <-w.kick:
			w.flush(ctx)
		}
	}
}

// enqueue replaces any not-yet-started pending op with op and wakes the
// writer. The superseded op's waiter, if any, is released with nil: its
// effect is carried forward by the newer snapshot.
func (w *writer) enqueue(op *writeOp) {
	w.mu.Lock()
	stale := w.pending
	w.pending = op
	w.mu.Unlock()

	if stale != nil && stale.done != nil {
		stale.done <- nil
	}
	select {
	case w.kick <- struct{}{}:
	default:
	}
}

func (w *writer) take() *writeOp {
	w.mu.Lock()
	defer w.mu.Unlock()
	op := w.pending
	w.pending = nil
	return op
}

// hasPending reports whether a write is queued but not yet started.
func (w *writer) hasPending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != nil
}

func (w *writer) flush(ctx context.Context) {
	for {
		op := w.take()
		if op == nil {
			return
		}

		var err error
		if op.snapshot == nil {
			err = w.storage.Remove(ctx, w.key)
		} else {
			err = w.storage.Set(ctx, w.key, op.snapshot)
		}

		if op.done != nil {
			op.done <- err
			continue
		}
		if err != nil && w.logger != nil {
			// Best-effort mirror: the in-memory collection stays
			// authoritative, the failure is absorbed here.
			w.logger.Error("failed to persist notes", "key", w.key, "error", err)
		}
	}
}

// wait blocks until the writer goroutine has exited or ctx expires.
func (w *writer) wait(ctx context.Context) error {
	select {
	case <-w.finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

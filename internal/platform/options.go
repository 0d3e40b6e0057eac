package platform

import (
	"log/slog"
	"time"

	"github.com/jotkit/jot/pkg/core"
)

// options holds the internal configuration for opening a store.
type options struct {
	storage     core.Storage
	logger      *slog.Logger
	key         string
	clock       func() time.Time
	eventBuffer int
	watch       bool
}

// Option defines a functional option for configuring the store.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		key: core.NotesKey,
	}
}

// WithLogger sets the logger for the store and its storage adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithStorage allows injecting a custom storage adapter (e.g. the
// in-memory one, or a remote KV). If provided, the default file
// adapter is skipped and the directory argument is ignored.
func WithStorage(storage core.Storage) Option {
	return func(o *options) {
		o.storage = storage
	}
}

// WithKey overrides the storage key holding the notes snapshot.
// Defaults to core.NotesKey.
func WithKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.key = key
		}
	}
}

// WithClock overrides the clock used to stamp ids and dates (tests).
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// WithEventBuffer sets the per-subscriber event channel size.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.eventBuffer = size
	}
}

// WithWatch enables the external-change watcher: when another process
// rewrites the snapshot on disk, the store reloads and emits a RELOAD
// event. Only effective with the file storage adapter. Meant for
// read-side observers; a store that mutates should leave this off,
// since its own memory is ahead of storage by design.
func WithWatch(enabled bool) Option {
	return func(o *options) {
		o.watch = enabled
	}
}

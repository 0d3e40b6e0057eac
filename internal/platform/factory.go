package platform

import (
	"context"
	"fmt"

	"github.com/jotkit/jot/pkg/adapters/kv"
	"github.com/jotkit/jot/pkg/core"
)

// Open wires a ready-to-use note store: storage adapter, store, initial
// load, and (optionally) the external-change watcher.
//
//	store, err := jot.Open(ctx, "~/.jot")
//
// The dir argument is where the file adapter keeps its keys; it is
// ignored when a storage adapter is injected via WithStorage.
func Open(ctx context.Context, dir string, opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	storage := o.storage
	if storage == nil {
		file, err := kv.NewFile(dir, o.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		storage = file
	}

	store := core.NewStore(core.Config{
		Storage:     storage,
		Key:         o.key,
		Logger:      o.logger,
		Clock:       o.clock,
		EventBuffer: o.eventBuffer,
	})

	if err := store.Load(ctx); err != nil {
		_ = store.Close(context.Background())
		return nil, err
	}

	if o.watch {
		file, ok := storage.(*kv.File)
		if !ok {
			_ = store.Close(context.Background())
			return nil, fmt.Errorf("watch requires the file storage adapter")
		}
		err := file.Watch(ctx, []string{o.key}, func(key string) {
			if err := store.Reload(context.Background()); err != nil && o.logger != nil {
				o.logger.Error("reload after external change failed", "key", key, "error", err)
			}
		})
		if err != nil {
			_ = store.Close(context.Background())
			return nil, fmt.Errorf("failed to start watcher: %w", err)
		}
	}

	return store, nil
}

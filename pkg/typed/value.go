package typed

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jotkit/jot/pkg/core"
)

// Value is a type-safe view over one key of a core.Storage: the stored
// bytes are JSON for T. It spares callers the marshal/unmarshal
// boilerplate for small flags and settings living next to the notes
// snapshot.
type Value[T any] struct {
	storage core.Storage
	key     string
}

// NewValue creates a typed view over key.
func NewValue[T any](storage core.Storage, key string) *Value[T] {
	return &Value[T]{storage: storage, key: key}
}

// Get reads and decodes the value; ok is false when the key is absent.
func (v *Value[T]) Get(ctx context.Context) (out T, ok bool, err error) {
	data, ok, err := v.storage.Get(ctx, v.key)
	if err != nil || !ok {
		return out, false, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, false, fmt.Errorf("failed to decode key %s: %w", v.key, err)
	}
	return out, true, nil
}

// Set encodes and stores the value.
func (v *Value[T]) Set(ctx context.Context, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode key %s: %w", v.key, err)
	}
	return v.storage.Set(ctx, v.key, data)
}

// Remove deletes the key; removing an absent key is not an error.
func (v *Value[T]) Remove(ctx context.Context) error {
	return v.storage.Remove(ctx, v.key)
}

package jot

import (
	"github.com/jotkit/jot/pkg/core"
	"github.com/jotkit/jot/pkg/typed"
)

// TypedValue is a type-safe view over one storage key, with the stored
// bytes treated as JSON for T. It is the generic companion to the raw
// Storage contract.
type TypedValue[T any] = typed.Value[T]

// NewTypedValue creates a type-safe view over a storage key.
// T is the type of the value you want to keep under the key.
func NewTypedValue[T any](storage core.Storage, key string) *TypedValue[T] {
	return typed.NewValue[T](storage, key)
}

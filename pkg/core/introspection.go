package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key          string `json:"key"`
	Ready        bool   `json:"ready"`
	Notes        int    `json:"notes"`
	PendingWrite bool   `json:"pending_write"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return StoreState{
		Key:          s.key,
		Ready:        s.ready,
		Notes:        len(s.notes),
		PendingWrite: s.writer.hasPending(),
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

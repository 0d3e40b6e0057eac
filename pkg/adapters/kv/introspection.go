package kv

import (
	"os"

	"github.com/aretw0/introspection"
)

// FileState exposes internal state for observability.
type FileState struct {
	Dir  string   `json:"dir"`
	Keys []string `json:"keys,omitempty"`
}

// State implements introspection.Introspectable.
func (f *File) State() any {
	state := FileState{Dir: f.dir}

	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return state
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if key, ok := f.keyForFile(entry.Name()); ok {
			state.Keys = append(state.Keys, key)
		}
	}
	return state
}

// ComponentType implements introspection.Component.
func (f *File) ComponentType() string {
	return "storage"
}

var _ introspection.Introspectable = (*File)(nil)
var _ introspection.Component = (*File)(nil)

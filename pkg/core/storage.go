package core

import "context"

// Storage keys used by the application.
const (
	// NotesKey holds the JSON-serialized array of all notes.
	NotesKey = "savedNotes"
	// OnboardedKey holds the onboarding-completion flag. It is read and
	// written at the application level, not by the store itself.
	OnboardedKey = "hasOnboarded"
)

// Storage defines the contract with the durable key-value service.
// Implementations are asynchronous from the store's point of view:
// the store updates memory first and mirrors to storage best-effort.
// Adhering to this interface keeps the core independent of the
// underlying mechanism (filesystem, in-memory, remote KV, ...).
type Storage interface {
	// Get retrieves the value for key. The second return is false when
	// the key is absent (which is not an error).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, overwriting any previous value whole.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

package core

import "fmt"

// EventType represents the type of change in the collection.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
	// EventReload signals that the whole collection was re-read from
	// durable storage (e.g. after an external change to the snapshot).
	EventReload EventType = "RELOAD"
)

// Event represents a change in the note collection.
type Event struct {
	Type      EventType
	ID        string
	Tags      []string
	Timestamp int64 // Unix milliseconds
}

// String implements fmt.Stringer (and the lifecycle Event contract).
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

package jot

import (
	"context"
	"log/slog"
	"time"

	"github.com/jotkit/jot/internal/platform"
	"github.com/jotkit/jot/pkg/core"
)

// Version exposes the version of the library.
const Version = "0.3.0"

const (
	// TagAll is the sentinel tag that matches every note.
	TagAll = core.TagAll
	// DefaultTitle is assigned to notes saved without one.
	DefaultTitle = core.DefaultTitle
	// DefaultColor marks a note that follows the theme background.
	DefaultColor = core.DefaultColor
)

// --- Types ---

// Store is the note store; see core.Store.
type Store = core.Store

// Note is the persisted user content unit.
type Note = core.Note

// NoteInput carries the caller-provided fields for Store.Add.
type NoteInput = core.NoteInput

// NotePatch is a partial update for Store.Update.
type NotePatch = core.NotePatch

// Event represents a change in the note collection.
type Event = core.Event

// TimelineEntry is a note placed on a calendar day.
type TimelineEntry = core.TimelineEntry

// Storage is the durable key-value contract.
type Storage = core.Storage

// ErrClosed is returned when an operation reaches a closed store.
var ErrClosed = core.ErrClosed

// --- Configuration ---

// Option defines a functional option for configuring the store.
type Option = platform.Option

// WithLogger sets the logger for the store and its storage adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithStorage allows injecting a custom storage adapter.
func WithStorage(storage core.Storage) Option {
	return platform.WithStorage(storage)
}

// WithKey overrides the storage key holding the notes snapshot.
func WithKey(key string) Option {
	return platform.WithKey(key)
}

// WithClock overrides the clock used to stamp ids and dates.
func WithClock(clock func() time.Time) Option {
	return platform.WithClock(clock)
}

// WithEventBuffer sets the per-subscriber event channel size.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithWatch enables reloading when the snapshot changes on disk.
func WithWatch(enabled bool) Option {
	return platform.WithWatch(enabled)
}

// --- Factory ---

// Open wires a ready-to-use note store rooted at the given data
// directory and performs the initial load.
func Open(ctx context.Context, dir string, opts ...Option) (*core.Store, error) {
	return platform.Open(ctx, dir, opts...)
}

// --- Projections ---

// Filter applies the tag filter and the text filter (logical AND).
func Filter(notes []Note, tag, query string) []Note {
	return core.Filter(notes, tag, query)
}

// SortForGrid sorts pinned-first, then newest-first.
func SortForGrid(notes []Note) []Note {
	return core.SortForGrid(notes)
}

// SplitColumns buckets a sorted slice into two columns by alternation.
func SplitColumns(notes []Note) (left, right []Note) {
	return core.SplitColumns(notes)
}

// TimelineFor groups notes onto the calendar day of the given instant.
func TimelineFor(notes []Note, day time.Time) []TimelineEntry {
	return core.TimelineFor(notes, day)
}

// AllPinned reports whether a non-empty selection is entirely pinned.
func AllPinned(notes []Note, selected map[string]bool) bool {
	return core.AllPinned(notes, selected)
}

// ExtractTags returns the hashtags found in a rich content blob.
func ExtractTags(content string) []string {
	return core.ExtractTags(content)
}

// PlainText strips a rich content blob down to readable text.
func PlainText(content string) string {
	return core.PlainText(content)
}

// --- App-level helpers ---

// Onboarded reports whether the onboarding-completion flag is set.
func Onboarded(ctx context.Context, storage Storage) bool {
	return platform.Onboarded(ctx, storage)
}

// SetOnboarded marks onboarding as completed.
func SetOnboarded(ctx context.Context, storage Storage) error {
	return platform.SetOnboarded(ctx, storage)
}

// ResetOnboarding removes the onboarding flag; part of a full reset.
func ResetOnboarding(ctx context.Context, storage Storage) error {
	return platform.ResetOnboarding(ctx, storage)
}

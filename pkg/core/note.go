package core

import (
	"strconv"
	"time"
)

const (
	// DefaultColor is the theme-adaptive "white" background sentinel.
	// Every other palette value is rendered verbatim regardless of the
	// display mode; this one is up to the presentation layer.
	DefaultColor = "#ffffff"

	// DefaultTitle is assigned when a note is saved with an empty title
	// but non-empty content.
	DefaultTitle = "New Note"

	// TagAll is the reserved tag-filter value meaning "no filter applied".
	TagAll = "All"

	// DateFormat renders the creation-date display string (e.g. "6 Dec 2025").
	DateFormat = "2 Jan 2006"

	// TimeFormat renders the time-of-day annotation on timeline entries.
	TimeFormat = "03:04 PM"
)

// Note is the central entity of the domain: one unit of user content.
// It is agnostic to how the rich Content blob is authored or rendered.
type Note struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Date     string   `json:"date"`
	Color    string   `json:"color"`
	Tags     []string `json:"tags"`
	IsPinned bool     `json:"isPinned"`

	// CreatedAt is the explicit creation instant in epoch milliseconds.
	// Snapshots written by older versions carry only the ID; see
	// CreatedMillis for the fallback.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// CreatedMillis returns the creation instant in epoch milliseconds.
// It prefers the explicit CreatedAt field and falls back to parsing the
// ID, which historically doubled as a Date.now() timestamp. Returns 0
// when neither yields a usable value; callers must treat 0 as "undatable"
// (sorted last in the grid, excluded from the timeline).
func (n Note) CreatedMillis() int64 {
	if n.CreatedAt > 0 {
		return n.CreatedAt
	}
	ts, err := strconv.ParseInt(n.ID, 10, 64)
	if err != nil || ts <= 0 {
		return 0
	}
	return ts
}

// CreatedTime returns the creation instant as a time.Time in the given
// location, and false when the note is undatable.
func (n Note) CreatedTime(loc *time.Location) (time.Time, bool) {
	ts := n.CreatedMillis()
	if ts <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(ts).In(loc), true
}

// NoteInput carries the caller-provided fields for Add. ID, Date,
// CreatedAt and Tags are stamped/derived by the store.
type NoteInput struct {
	Title    string
	Content  string
	Color    string
	IsPinned bool
}

// NotePatch is a partial update for Update. Nil fields are left
// untouched. Tags are never patched directly: they are re-derived from
// the effective content on every save.
type NotePatch struct {
	Title    *string
	Content  *string
	Color    *string
	IsPinned *bool
}

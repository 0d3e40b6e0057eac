package core

import (
	"sort"
	"strings"
	"time"
)

// Query projections: pure, stateless derivations over a collection
// snapshot plus transient query parameters. They are recomputed fresh
// on every interaction; no memoization or indexing is assumed.

// FilterByTag keeps notes whose tag set contains tag (exact,
// case-sensitive match; tags carry their leading "#"). The TagAll
// sentinel passes everything through.
func FilterByTag(notes []Note, tag string) []Note {
	if tag == "" || tag == TagAll {
		return notes
	}
	var out []Note
	for _, n := range notes {
		for _, t := range n.Tags {
			if t == tag {
				out = append(out, n)
				break
			}
		}
	}
	return out
}

// FilterByText keeps notes where query is a case-insensitive substring
// of the title or the raw content. The match is not markup-aware: the
// query is compared against the content blob as stored. An empty query
// passes everything through.
func FilterByText(notes []Note, query string) []Note {
	if query == "" {
		return notes
	}
	q := strings.ToLower(query)
	var out []Note
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

// Filter is the logical AND of FilterByTag and FilterByText.
func Filter(notes []Note, tag, query string) []Note {
	return FilterByText(FilterByTag(notes, tag), query)
}

// SortForGrid returns a copy sorted for the grid view: pinned notes
// first (stable among themselves), then unpinned; within each tier,
// descending by creation timestamp. Undatable notes (timestamp 0) sort
// last within their tier.
func SortForGrid(notes []Note) []Note {
	out := make([]Note, len(notes))
	copy(out, notes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsPinned != out[j].IsPinned {
			return out[i].IsPinned
		}
		return out[i].CreatedMillis() > out[j].CreatedMillis()
	})
	return out
}

// SplitColumns buckets an already-sorted slice into two columns by
// alternating assignment: even positional index to the left column,
// odd to the right, preserving order within each column.
func SplitColumns(notes []Note) (left, right []Note) {
	for i, n := range notes {
		if i%2 == 0 {
			left = append(left, n)
		} else {
			right = append(right, n)
		}
	}
	return left, right
}

// TimelineEntry is a note scheduled on a calendar day, annotated with
// its formatted time of day.
type TimelineEntry struct {
	Note
	Time string
}

// TimelineFor returns the notes created on the same calendar day as
// day, in day's location, most recent first. Undatable notes are
// excluded entirely: they cannot be placed on a timeline.
func TimelineFor(notes []Note, day time.Time) []TimelineEntry {
	loc := day.Location()
	y, m, d := day.Date()

	var entries []TimelineEntry
	for _, n := range notes {
		created, ok := n.CreatedTime(loc)
		if !ok {
			continue
		}
		ny, nm, nd := created.Date()
		if ny != y || nm != m || nd != d {
			continue
		}
		entries = append(entries, TimelineEntry{Note: n, Time: created.Format(TimeFormat)})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedMillis() > entries[j].CreatedMillis()
	})
	return entries
}

// AllPinned reports whether the selection is non-empty and every
// selected note is pinned. It drives a toggle icon's visual state only;
// it never gates the toggle action itself.
func AllPinned(notes []Note, selected map[string]bool) bool {
	if len(selected) == 0 {
		return false
	}
	for _, n := range notes {
		if selected[n.ID] && !n.IsPinned {
			return false
		}
	}
	return true
}

// Package jot is the Composition Root for the jot note-taking core.
//
// It connects the domain layer (the note store and its query
// projections) with the infrastructure adapters (durable key-value
// persistence) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// jot is the state-management and persistence core of a local-first
// personal notes application. All state lives on-device; the in-memory
// collection is the single source of truth and durable storage is a
// best-effort mirror, updated after every mutation through a
// write-coalescing queue. There is no server and no sync.
//
// Features:
//
//   - **Explicit store lifecycle**: Open → mutate/read → Close; the
//     store is a constructed, injected object, never a global.
//   - **Persistence on mutation**: every mutation re-serializes the
//     full collection; writes are serialized latest-wins so a slow
//     write can never clobber a newer snapshot.
//   - **Corruption tolerance**: malformed snapshot entries are filtered
//     at load time, never fatal.
//   - **Derived tag vocabulary**: hashtags are extracted from content
//     and aggregated fresh on every read.
//   - **Pure projections**: tag/text filtering, pin-then-recency
//     sorting, two-column bucketing and calendar-day timeline grouping
//     are stateless functions over a snapshot.
//   - **Default Adapter (file KV)**: atomic file-per-key storage with
//     an optional external-change watcher.
//
// Usage:
//
//	// Open a store rooted at a data directory
//	store, err := jot.Open(ctx, "~/.jot", jot.WithLogger(logger))
//
//	// Capture a note
//	note, ok := store.Add(jot.NoteInput{Title: "Groceries", Content: "Buy milk #errand"})
package jot

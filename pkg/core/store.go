package core

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Config holds the configuration for a Store.
type Config struct {
	Storage Storage
	// Key under which the snapshot is persisted. Defaults to NotesKey.
	Key    string
	Logger *slog.Logger
	// Clock allows tests to control ID/Date stamping. Defaults to time.Now.
	Clock func() time.Time
	// EventBuffer is the per-subscriber event channel size. Zero means
	// the default (100).
	EventBuffer int
}

// Store is the single source of truth for the note collection.
//
// Every mutation updates the in-memory collection synchronously and
// then schedules a full-snapshot write to durable storage through a
// coalescing writer; readers always observe memory, never storage.
// Storage failures are logged and absorbed — the only mutation that
// surfaces a storage error to its caller is ClearAll.
//
// Lifecycle: NewStore → Load → mutate/read → Close.
type Store struct {
	mu     sync.RWMutex
	notes  []Note
	ready  bool
	closed bool

	storage Storage
	key     string
	logger  *slog.Logger
	now     func() time.Time

	writer *writer
	broker *broker
	cancel context.CancelFunc

	closeOnce sync.Once
}

// NewStore creates an unloaded Store. The persistence writer starts
// immediately; the collection stays empty until Load completes.
func NewStore(cfg Config) *Store {
	if cfg.Key == "" {
		cfg.Key = NotesKey
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		storage: cfg.Storage,
		key:     cfg.Key,
		logger:  cfg.Logger,
		now:     cfg.Clock,
		writer:  newWriter(cfg.Storage, cfg.Key, cfg.Logger),
		broker:  newBroker(cfg.EventBuffer),
		cancel:  cancel,
	}
	s.writer.start(ctx)
	return s
}

// Load reads the snapshot from durable storage once. An absent key
// yields an empty collection; a corrupt snapshot is filtered down to
// its well-formed entries. Neither is an error: load failures are
// absorbed at the storage boundary and only logged. The returned error
// is context cancellation only.
func (s *Store) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to load notes, starting empty", "key", s.key, "error", err)
		}
		data, ok = nil, false
	}

	var notes []Note
	if ok {
		notes = s.decodeSnapshot(data)
	}

	s.mu.Lock()
	s.notes = notes
	s.ready = true
	s.mu.Unlock()
	return nil
}

// Reload re-runs the load path against the current storage contents,
// replacing the in-memory collection. Intended for observers reacting
// to external snapshot changes; a store that is actively mutating
// should not reload, since memory is ahead of storage by design.
func (s *Store) Reload(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	s.broker.publish(Event{Type: EventReload, ID: s.key, Timestamp: s.now().UnixMilli()})
	return nil
}

// decodeSnapshot validates a stored snapshot entry by entry. Anything
// that is not an object, lacks a non-empty string id, or has no title
// field is silently dropped. A blob that is not a JSON array at all
// yields an empty collection.
func (s *Store) decodeSnapshot(data []byte) []Note {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		if s.logger != nil {
			s.logger.Warn("stored notes are not a JSON array, starting empty", "key", s.key, "error", err)
		}
		return nil
	}

	notes := make([]Note, 0, len(raw))
	for _, entry := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(entry, &fields); err != nil {
			continue
		}
		var id string
		if err := json.Unmarshal(fields["id"], &id); err != nil || id == "" {
			continue
		}
		if _, ok := fields["title"]; !ok {
			continue
		}
		var n Note
		if err := json.Unmarshal(entry, &n); err != nil {
			continue
		}
		notes = append(notes, n)
	}
	return notes
}

// Ready reports whether the initial Load has completed. Readers before
// that point observe an empty collection.
func (s *Store) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Notes returns a snapshot copy of the collection in insertion order
// (newest first).
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Len returns the number of notes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Get retrieves a note by id.
func (s *Store) Get(id string) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}

// AllTags derives the tag vocabulary fresh from the live collection:
// the TagAll sentinel followed by the alphabetically sorted set of
// distinct non-blank tags. Nothing is cached.
func (s *Store) AllTags() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, n := range s.notes {
		for _, t := range n.Tags {
			if strings.TrimSpace(t) == "" {
				continue
			}
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	sort.Strings(tags)
	return append([]string{TagAll}, tags...)
}

// Add stamps and prepends a new note, then schedules persistence.
// An entirely empty note (blank title, no readable content) is
// discarded, not stored; ok is false in that case.
func (s *Store) Add(input NoteInput) (note Note, ok bool) {
	title := strings.TrimSpace(input.Title)
	if title == "" && PlainText(input.Content) == "" {
		return Note{}, false
	}
	if title == "" {
		title = DefaultTitle
	}
	color := input.Color
	if color == "" {
		color = DefaultColor
	}

	s.mu.Lock()
	now := s.now()
	ts := now.UnixMilli()
	// IDs must stay unique and numerically increasing; two notes in the
	// same millisecond get adjacent timestamps.
	for s.hasIDLocked(strconv.FormatInt(ts, 10)) {
		ts++
	}
	note = Note{
		ID:        strconv.FormatInt(ts, 10),
		Title:     title,
		Content:   input.Content,
		Date:      now.Format(DateFormat),
		Color:     color,
		Tags:      ExtractTags(input.Content),
		IsPinned:  input.IsPinned,
		CreatedAt: ts,
	}
	s.notes = append([]Note{note}, s.notes...)
	snapshot := s.encodeLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	s.broker.publish(Event{Type: EventCreate, ID: note.ID, Tags: note.Tags, Timestamp: ts})
	return note, true
}

// Update merges the patch into the matching note; a miss is a safe
// no-op. Tags are re-derived from the effective content on every save.
// Persistence is scheduled either way.
func (s *Store) Update(id string, patch NotePatch) {
	s.mu.Lock()
	var updated *Note
	for i := range s.notes {
		if s.notes[i].ID != id {
			continue
		}
		n := &s.notes[i]
		if patch.Title != nil {
			n.Title = *patch.Title
		}
		if patch.Content != nil {
			n.Content = *patch.Content
		}
		if patch.Color != nil {
			n.Color = *patch.Color
		}
		if patch.IsPinned != nil {
			n.IsPinned = *patch.IsPinned
		}
		n.Tags = ExtractTags(n.Content)
		updated = n
		break
	}
	snapshot := s.encodeLocked()
	event := Event{Type: EventModify, ID: id, Timestamp: s.now().UnixMilli()}
	if updated != nil {
		event.Tags = updated.Tags
	}
	s.mu.Unlock()

	s.persist(snapshot)
	if updated != nil {
		s.broker.publish(event)
	}
}

// Delete removes the note with the given id; absent ids are ignored.
func (s *Store) Delete(id string) {
	s.DeleteMany([]string{id})
}

// DeleteMany removes every matching note; absent ids are ignored.
// Persistence is scheduled even when nothing matched.
func (s *Store) DeleteMany(ids []string) {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}

	s.mu.Lock()
	kept := s.notes[:0]
	var removed []Note
	for _, n := range s.notes {
		if drop[n.ID] {
			removed = append(removed, n)
			continue
		}
		kept = append(kept, n)
	}
	s.notes = kept
	snapshot := s.encodeLocked()
	now := s.now().UnixMilli()
	s.mu.Unlock()

	s.persist(snapshot)
	for _, n := range removed {
		s.broker.publish(Event{Type: EventDelete, ID: n.ID, Tags: n.Tags, Timestamp: now})
	}
}

// TogglePin flips the pin state of the matching note; a miss is a safe
// no-op. Persistence is scheduled either way.
func (s *Store) TogglePin(id string) {
	s.mu.Lock()
	var toggled *Note
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i].IsPinned = !s.notes[i].IsPinned
			toggled = &s.notes[i]
			break
		}
	}
	snapshot := s.encodeLocked()
	now := s.now().UnixMilli()
	s.mu.Unlock()

	s.persist(snapshot)
	if toggled != nil {
		s.broker.publish(Event{Type: EventModify, ID: toggled.ID, Tags: toggled.Tags, Timestamp: now})
	}
}

// ClearAll empties the collection and removes the storage key itself,
// so no residual empty-array snapshot lingers after a full reset. The
// removal goes through the writer queue — it cannot be overtaken by a
// stale snapshot write — and its outcome is the one storage error that
// reaches a caller.
func (s *Store) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	removed := s.notes
	s.notes = nil
	now := s.now().UnixMilli()
	s.mu.Unlock()

	for _, n := range removed {
		s.broker.publish(Event{Type: EventDelete, ID: n.ID, Tags: n.Tags, Timestamp: now})
	}

	done := make(chan error, 1)
	s.writer.enqueue(&writeOp{snapshot: nil, done: done})
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe returns a channel of mutation events whose note id or any
// tag matches the doublestar pattern ("" or "*" for everything). The
// channel closes when ctx is cancelled.
func (s *Store) Subscribe(ctx context.Context, pattern string) <-chan Event {
	return s.broker.subscribe(ctx, pattern)
}

// Close flushes any pending write and stops the writer. The store must
// not be mutated afterwards.
func (s *Store) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		s.cancel()
		err = s.writer.wait(ctx)
	})
	return err
}

func (s *Store) hasIDLocked(id string) bool {
	for _, n := range s.notes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// encodeLocked serializes the full collection. Serialization failure is
// impossible for this shape, but is absorbed like any write failure.
func (s *Store) encodeLocked() []byte {
	notes := s.notes
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("failed to encode notes snapshot", "error", err)
		}
		return nil
	}
	return data
}

// persist schedules a full-snapshot write; fire-and-forget.
func (s *Store) persist(snapshot []byte) {
	if snapshot == nil {
		return
	}
	s.writer.enqueue(&writeOp{snapshot: snapshot})
}

package core_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/jotkit/jot/pkg/adapters/kv"
	"github.com/jotkit/jot/pkg/core"
)

// newTestStore builds a loaded store over an in-memory backend with a
// controllable clock. The clock advances one second per call so ids
// stay distinct and ordered.
func newTestStore(t *testing.T) (*core.Store, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	return newTestStoreOn(t, mem), mem
}

func newTestStoreOn(t *testing.T, mem *kv.Memory) *core.Store {
	t.Helper()
	base := time.Date(2025, 12, 6, 10, 30, 0, 0, time.UTC)
	calls := 0
	store := core.NewStore(core.Config{
		Storage: mem,
		Clock: func() time.Time {
			calls++
			return base.Add(time.Duration(calls) * time.Second)
		},
	})
	if err := store.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	t.Cleanup(func() {
		store.Close(context.Background())
	})
	return store
}

func TestStore_Add(t *testing.T) {
	t.Run("Stamps And Prepends", func(t *testing.T) {
		store, _ := newTestStore(t)

		first, ok := store.Add(core.NoteInput{Title: "Groceries", Content: "<p>Buy milk #errand</p>"})
		if !ok {
			t.Fatal("expected note to be saved")
		}
		second, ok := store.Add(core.NoteInput{Title: "Second", Content: "later"})
		if !ok {
			t.Fatal("expected note to be saved")
		}

		if first.ID == "" || first.ID == second.ID {
			t.Errorf("expected distinct non-empty ids, got %q and %q", first.ID, second.ID)
		}
		if first.Date != "6 Dec 2025" {
			t.Errorf("expected date '6 Dec 2025', got %q", first.Date)
		}
		if !reflect.DeepEqual(first.Tags, []string{"#errand"}) {
			t.Errorf("expected tags [#errand], got %v", first.Tags)
		}
		if first.CreatedAt == 0 {
			t.Error("expected CreatedAt to be stamped")
		}

		notes := store.Notes()
		if len(notes) != 2 || notes[0].ID != second.ID {
			t.Errorf("expected newest note first, got %v", notes)
		}
	})

	t.Run("Defaults Title And Color", func(t *testing.T) {
		store, _ := newTestStore(t)

		note, ok := store.Add(core.NoteInput{Content: "something"})
		if !ok {
			t.Fatal("expected note to be saved")
		}
		if note.Title != core.DefaultTitle {
			t.Errorf("expected default title, got %q", note.Title)
		}
		if note.Color != core.DefaultColor {
			t.Errorf("expected default color, got %q", note.Color)
		}
	})

	t.Run("Discards Empty Note", func(t *testing.T) {
		store, _ := newTestStore(t)

		// Markup-only content reads as empty.
		if _, ok := store.Add(core.NoteInput{Title: "  ", Content: "<p><br></p>"}); ok {
			t.Error("expected empty note to be discarded")
		}
		if store.Len() != 0 {
			t.Errorf("expected empty collection, got %d notes", store.Len())
		}
	})

	t.Run("Resolves ID Collisions", func(t *testing.T) {
		mem := kv.NewMemory()
		fixed := time.Date(2025, 12, 6, 10, 30, 0, 0, time.UTC)
		store := core.NewStore(core.Config{
			Storage: mem,
			Clock:   func() time.Time { return fixed },
		})
		defer store.Close(context.Background())
		if err := store.Load(context.Background()); err != nil {
			t.Fatalf("Load failed: %v", err)
		}

		a, _ := store.Add(core.NoteInput{Content: "one"})
		b, _ := store.Add(core.NoteInput{Content: "two"})
		if a.ID == b.ID {
			t.Errorf("expected collision to be resolved, both got %q", a.ID)
		}
		if b.CreatedMillis() <= a.CreatedMillis() {
			t.Errorf("expected bumped timestamp to stay increasing: %d vs %d", a.CreatedMillis(), b.CreatedMillis())
		}
	})
}

func TestStore_Update(t *testing.T) {
	store, _ := newTestStore(t)
	note, _ := store.Add(core.NoteInput{Title: "Draft", Content: "text #old"})

	content := "rewritten #new"
	store.Update(note.ID, core.NotePatch{Content: &content})

	got, ok := store.Get(note.ID)
	if !ok {
		t.Fatal("note disappeared after update")
	}
	if got.Content != content {
		t.Errorf("expected updated content, got %q", got.Content)
	}
	if !reflect.DeepEqual(got.Tags, []string{"#new"}) {
		t.Errorf("expected tags re-derived to [#new], got %v", got.Tags)
	}
	if got.Title != "Draft" {
		t.Errorf("expected untouched title, got %q", got.Title)
	}

	// Unknown id is a safe no-op.
	store.Update("missing", core.NotePatch{Content: &content})
	if store.Len() != 1 {
		t.Errorf("expected 1 note, got %d", store.Len())
	}
}

func TestStore_Delete(t *testing.T) {
	store, _ := newTestStore(t)
	a, _ := store.Add(core.NoteInput{Content: "a"})
	b, _ := store.Add(core.NoteInput{Content: "b"})

	store.Delete(a.ID)
	if _, ok := store.Get(a.ID); ok {
		t.Error("expected note to be gone")
	}

	// Deleting again is a no-op, not an error.
	store.Delete(a.ID)
	if store.Len() != 1 {
		t.Errorf("expected 1 note, got %d", store.Len())
	}

	store.DeleteMany([]string{b.ID, "missing"})
	if store.Len() != 0 {
		t.Errorf("expected empty collection, got %d notes", store.Len())
	}
}

func TestStore_TogglePin(t *testing.T) {
	store, _ := newTestStore(t)
	note, _ := store.Add(core.NoteInput{Content: "pin me"})

	store.TogglePin(note.ID)
	if got, _ := store.Get(note.ID); !got.IsPinned {
		t.Error("expected note to be pinned")
	}
	store.TogglePin(note.ID)
	if got, _ := store.Get(note.ID); got.IsPinned {
		t.Error("expected note to be unpinned")
	}

	// Miss is a no-op.
	store.TogglePin("missing")
}

func TestStore_AllTags(t *testing.T) {
	store, _ := newTestStore(t)
	store.Add(core.NoteInput{Content: "#zebra #apple"})
	store.Add(core.NoteInput{Content: "#apple again"})

	got := store.AllTags()
	want := []string{core.TagAll, "#apple", "#zebra"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// Deleting the only #zebra note shrinks the vocabulary immediately.
	notes := store.Notes()
	store.Delete(notes[1].ID)
	got = store.AllTags()
	want = []string{core.TagAll, "#apple"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v after delete, got %v", want, got)
	}
}

func TestStore_Persistence(t *testing.T) {
	t.Run("Snapshot Survives Restart", func(t *testing.T) {
		mem := kv.NewMemory()
		store := newTestStoreOn(t, mem)
		note, _ := store.Add(core.NoteInput{Title: "Keep", Content: "body #keep"})
		if err := store.Close(context.Background()); err != nil {
			t.Fatalf("Close failed: %v", err)
		}

		reopened := newTestStoreOn(t, mem)
		got, ok := reopened.Get(note.ID)
		if !ok {
			t.Fatal("expected note to survive restart")
		}
		if got.Title != "Keep" || !reflect.DeepEqual(got.Tags, []string{"#keep"}) {
			t.Errorf("unexpected reloaded note: %+v", got)
		}
	})

	t.Run("Memory Leads Storage", func(t *testing.T) {
		mem := kv.NewMemory()
		release := make(chan struct{})
		gate := make(chan struct{}, 1)
		mem.OnSet = func(key string) {
			select {
			case gate <- struct{}{}:
			default:
			}
			<-release
		}

		store := newTestStoreOn(t, mem)
		note, _ := store.Add(core.NoteInput{Content: "fast read"})

		// The write is parked behind the gate, yet the read path already
		// observes the mutation.
		<-gate
		if _, ok := store.Get(note.ID); !ok {
			t.Error("expected in-memory state to lead durable storage")
		}
		if _, ok := mem.Snapshot(core.NotesKey); ok {
			t.Error("expected storage to still be empty while write is parked")
		}

		close(release)
		if err := store.Close(context.Background()); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
		if _, ok := mem.Snapshot(core.NotesKey); !ok {
			t.Error("expected snapshot to land after release")
		}
	})

	t.Run("Write Failure Is Absorbed", func(t *testing.T) {
		mem := kv.NewMemory()
		mem.SetErr = errors.New("disk full")

		store := newTestStoreOn(t, mem)
		note, ok := store.Add(core.NoteInput{Content: "still saved in memory"})
		if !ok {
			t.Fatal("expected Add to succeed despite storage failure")
		}
		if _, ok := store.Get(note.ID); !ok {
			t.Error("expected note to remain readable")
		}
		if err := store.Close(context.Background()); err != nil {
			t.Fatalf("Close failed: %v", err)
		}
	})
}

func TestStore_ClearAll(t *testing.T) {
	t.Run("Removes Key", func(t *testing.T) {
		mem := kv.NewMemory()
		store := newTestStoreOn(t, mem)
		store.Add(core.NoteInput{Content: "one"})
		store.Add(core.NoteInput{Content: "two"})

		if err := store.ClearAll(context.Background()); err != nil {
			t.Fatalf("ClearAll failed: %v", err)
		}
		if store.Len() != 0 {
			t.Errorf("expected empty collection, got %d notes", store.Len())
		}

		store.Close(context.Background())
		if _, ok := mem.Snapshot(core.NotesKey); ok {
			t.Error("expected storage key to be removed, not overwritten")
		}

		reopened := newTestStoreOn(t, mem)
		if reopened.Len() != 0 {
			t.Errorf("expected empty collection after restart, got %d notes", reopened.Len())
		}
	})

	t.Run("Surfaces Storage Error", func(t *testing.T) {
		mem := kv.NewMemory()
		mem.RemoveErr = errors.New("device gone")

		store := newTestStoreOn(t, mem)
		store.Add(core.NoteInput{Content: "one"})

		err := store.ClearAll(context.Background())
		if err == nil {
			t.Fatal("expected ClearAll to surface the storage error")
		}
		// Memory is emptied regardless; the error covers durability only.
		if store.Len() != 0 {
			t.Errorf("expected empty collection, got %d notes", store.Len())
		}
	})

	t.Run("After Close", func(t *testing.T) {
		store, _ := newTestStore(t)
		store.Close(context.Background())

		if err := store.ClearAll(context.Background()); !errors.Is(err, core.ErrClosed) {
			t.Errorf("expected ErrClosed, got %v", err)
		}
	})
}

func TestStore_Load(t *testing.T) {
	t.Run("Filters Malformed Entries", func(t *testing.T) {
		mem := kv.NewMemory()
		blob := `[
			{"id":"1000","title":"good","content":"","date":"","color":"","tags":[],"isPinned":false},
			{"title":"no id"},
			{"id":42,"title":"numeric id"},
			{"id":"2000"},
			"not an object",
			{"id":"3000","title":"also good","content":"","date":"","color":"","tags":[],"isPinned":true}
		]`
		mem.Set(context.Background(), core.NotesKey, []byte(blob))

		store := newTestStoreOn(t, mem)
		notes := store.Notes()
		if len(notes) != 2 {
			t.Fatalf("expected 2 well-formed notes, got %d: %v", len(notes), notes)
		}
		if notes[0].ID != "1000" || notes[1].ID != "3000" {
			t.Errorf("unexpected survivors: %v", notes)
		}
	})

	t.Run("Non-Array Blob Yields Empty", func(t *testing.T) {
		mem := kv.NewMemory()
		mem.Set(context.Background(), core.NotesKey, []byte(`{"oops":true}`))

		store := newTestStoreOn(t, mem)
		if store.Len() != 0 {
			t.Errorf("expected empty collection, got %d notes", store.Len())
		}
		if !store.Ready() {
			t.Error("expected store to be ready after a corrupt load")
		}
	})

	t.Run("Absent Key Yields Empty", func(t *testing.T) {
		store, _ := newTestStore(t)
		if store.Len() != 0 {
			t.Errorf("expected empty collection, got %d notes", store.Len())
		}
		if !store.Ready() {
			t.Error("expected store to be ready")
		}
	})

	t.Run("Legacy Snapshot Without CreatedAt", func(t *testing.T) {
		mem := kv.NewMemory()
		legacy := []core.Note{{ID: "1733480000000", Title: "old", Tags: []string{}}}
		data, _ := json.Marshal(legacy)
		mem.Set(context.Background(), core.NotesKey, data)

		store := newTestStoreOn(t, mem)
		got, ok := store.Get("1733480000000")
		if !ok {
			t.Fatal("expected legacy note to load")
		}
		if got.CreatedMillis() != 1733480000000 {
			t.Errorf("expected id fallback timestamp, got %d", got.CreatedMillis())
		}
	})
}

func TestStore_Subscribe(t *testing.T) {
	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	all := store.Subscribe(ctx, "*")
	errands := store.Subscribe(ctx, "#errand*")

	note, _ := store.Add(core.NoteInput{Content: "milk #errand"})
	store.Add(core.NoteInput{Content: "unrelated #idea"})

	e := <-all
	if e.Type != core.EventCreate || e.ID != note.ID {
		t.Errorf("unexpected first event: %+v", e)
	}
	<-all

	e = <-errands
	if e.ID != note.ID {
		t.Errorf("expected only the #errand note on the filtered feed, got %+v", e)
	}
	select {
	case extra := <-errands:
		t.Errorf("unexpected extra event on filtered feed: %+v", extra)
	default:
	}

	cancel()
	for range all {
	}
}

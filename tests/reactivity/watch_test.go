package reactivity

import (
	"context"
	"testing"
	"time"

	"github.com/jotkit/jot"
	"github.com/jotkit/jot/pkg/adapters/kv"
	"github.com/jotkit/jot/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubscriber_Decoupling verifies that a slow subscriber cannot
// stall mutations: events buffer up to the configured size and overflow
// is dropped, never blocking the store.
func TestSubscriber_Decoupling(t *testing.T) {
	store, err := jot.Open(context.Background(), "",
		jot.WithStorage(kv.NewMemory()),
		jot.WithEventBuffer(2),
	)
	require.NoError(t, err)
	defer store.Close(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stream := store.Subscribe(ctx, "*")

	// Nobody reads the stream; mutations must still return promptly.
	done := make(chan bool)
	go func() {
		for i := 0; i < 5; i++ {
			store.Add(jot.NoteInput{Content: "burst"})
		}
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("mutations blocked on a slow subscriber")
	}

	// The buffer holds the first events; the rest were dropped.
	received := 0
	timeout := time.After(time.Second)
	for received < 2 {
		select {
		case <-stream:
			received++
		case <-timeout:
			t.Fatalf("expected 2 buffered events, got %d", received)
		}
	}
	select {
	case e := <-stream:
		t.Fatalf("expected overflow to be dropped, got %+v", e)
	default:
	}
}

// TestReload_ExternalEdit verifies the cross-process story: a reader
// with watching enabled picks up a snapshot rewritten by a second
// store over the same directory.
func TestReload_ExternalEdit(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader, err := jot.Open(ctx, dir, jot.WithWatch(true))
	require.NoError(t, err)
	defer reader.Close(context.Background())
	require.Zero(t, reader.Len())

	events := reader.Subscribe(ctx, "")

	writer, err := jot.Open(ctx, dir)
	require.NoError(t, err)
	note, ok := writer.Add(jot.NoteInput{Title: "from elsewhere", Content: "x #shared"})
	require.True(t, ok)
	require.NoError(t, writer.Close(context.Background()))

	require.Eventually(t, func() bool {
		_, found := reader.Get(note.ID)
		return found
	}, 5*time.Second, 20*time.Millisecond, "reader never observed the external note")

	// A RELOAD event accompanied the refresh.
	sawReload := false
	deadline := time.After(2 * time.Second)
	for !sawReload {
		select {
		case e := <-events:
			if e.Type == core.EventReload {
				sawReload = true
			}
		case <-deadline:
			t.Fatal("no RELOAD event observed")
		}
	}
	assert.Equal(t, 1, reader.Len())
}

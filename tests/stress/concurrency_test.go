package stress

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jotkit/jot"
	"github.com/stretchr/testify/require"
)

// TestConcurrency_MutatorsVsNoise hammers one store from many
// goroutines while an external actor litters the data directory.
// We want to ensure:
// 1. No panics and no data races under -race.
// 2. The surviving snapshot is valid JSON that decodes to notes.
// 3. Every note that was added and not deleted is still readable.
func TestConcurrency_MutatorsVsNoise(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	dir := t.TempDir()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := jot.Open(context.Background(), dir)
	require.NoError(t, err)

	var wg sync.WaitGroup

	// 1. External actor: unrelated files appearing in the directory.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			default:
				name := fmt.Sprintf("noise-%d", rand.Intn(10))
				_ = os.WriteFile(filepath.Join(dir, name), []byte("noise"), 0644)
				time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
			}
		}
	}()

	// 2. Writers: concurrent adds with tags.
	var mu sync.Mutex
	var added []string
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; ; i++ {
				select {
				case <-ctx.Done():
					return
				default:
					n, ok := store.Add(jot.NoteInput{
						Title:   fmt.Sprintf("w%d-%d", g, i),
						Content: fmt.Sprintf("body #g%d", g),
					})
					if ok {
						mu.Lock()
						added = append(added, n.ID)
						mu.Unlock()
					}
					time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
				}
			}
		}(g)
	}

	// 3. Togglers and readers racing the writers.
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			default:
				notes := store.Notes()
				if len(notes) > 0 {
					store.TogglePin(notes[rand.Intn(len(notes))].ID)
				}
				_ = store.AllTags()
				_ = jot.SortForGrid(notes)
				time.Sleep(time.Duration(rand.Intn(5)) * time.Millisecond)
			}
		}
	}()

	wg.Wait()
	require.NoError(t, store.Close(context.Background()))

	// Every added note survived in memory and on disk.
	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, len(added), store.Len())

	data, err := os.ReadFile(filepath.Join(dir, "savedNotes"))
	require.NoError(t, err)
	var persisted []jot.Note
	require.NoError(t, json.Unmarshal(data, &persisted))
	require.Len(t, persisted, len(added))
}

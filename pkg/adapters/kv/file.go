package kv

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
)

// File implements core.Storage on a directory with one file per key.
// Writes are atomic (temp file + rename), so readers — including other
// processes watching the directory — never observe a torn snapshot.
type File struct {
	dir    string
	logger *slog.Logger
}

// NewFile creates a file-backed key-value store rooted at dir,
// creating the directory if needed.
func NewFile(dir string, logger *slog.Logger) (*File, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &File{dir: dir, logger: logger}, nil
}

// Dir returns the backing directory.
func (f *File) Dir() string {
	return f.dir
}

// Get retrieves the value for key; ok is false when the key is absent.
func (f *File) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return data, true, nil
}

// Set stores value under key, overwriting any previous value whole.
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.logger != nil {
		f.logger.Debug("writing key to disk", "key", key, "bytes", len(value))
	}
	if err := writeFileAtomic(f.path(key), value, 0644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key. Removing an absent key is not an error.
func (f *File) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(f.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove key %s: %w", key, err)
	}
	return nil
}

// path maps a key to a file path. Keys are percent-escaped so that
// arbitrary key strings cannot traverse out of the directory.
func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key))
}

// keyForFile maps a file name back to its key; ok is false for files
// that are not key files (temp files, foreign content).
func (f *File) keyForFile(name string) (string, bool) {
	base := filepath.Base(name)
	if len(base) >= len(TempFilePrefix) && base[:len(TempFilePrefix)] == TempFilePrefix {
		return "", false
	}
	key, err := url.PathUnescape(base)
	if err != nil {
		return "", false
	}
	return key, true
}

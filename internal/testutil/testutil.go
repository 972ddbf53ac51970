// Package testutil provides filesystem helpers shared across tests.
package testutil

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// CreateFile creates a file at rel (slash-separated, may contain
// subdirectories) under dir with the given content and returns its path.
func CreateFile(t *testing.T, dir, rel string, content []byte) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent dirs: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}
	return path
}

// CreateFileWithSize creates a file of the given size filled with random
// bytes.
func CreateFileWithSize(t *testing.T, dir, rel string, size int64) string {
	t.Helper()

	buf := make([]byte, size)
	rand.Read(buf)
	return CreateFile(t, dir, rel, buf)
}

// SetModTime rewinds a file's modification time, for exercising
// timestamp-fallback date resolution.
func SetModTime(t *testing.T, path string, mtime time.Time) {
	t.Helper()

	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("failed to set mtime: %v", err)
	}
}

// ReadDirNames returns the sorted names of a directory's entries.
func ReadDirNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// Package archive is the destination-side filesystem adapter. It is the
// only component besides the executor's source reads that touches the
// archive tree; the decision engine sees it through the planner's
// ArchiveView interface.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pverhoeven/insorter/internal/domain"
)

// Local wraps a destination root directory.
type Local struct {
	root string
}

// Open validates that root exists and is a directory.
func Open(root string) (*Local, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, root)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotDirectory, root)
	}

	return &Local{root: absRoot}, nil
}

// Root returns the absolute destination root.
func (a *Local) Root() string {
	return a.root
}

// resolve maps a root-relative path to an absolute one, rejecting any
// path that would escape the root.
func (a *Local) resolve(rel string) (string, error) {
	if rel == "" || rel == "." {
		return a.root, nil
	}

	rel = filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(rel) {
		return "", domain.ErrPermissionDenied
	}

	full := filepath.Join(a.root, rel)
	check, err := filepath.Rel(a.root, full)
	if err != nil || strings.HasPrefix(check, "..") {
		return "", domain.ErrPermissionDenied
	}
	return full, nil
}

// DateFolders lists the names of the immediate directory children of the
// root. Files at the top level are not candidates for owning a date.
func (a *Local) DateFolders() ([]string, error) {
	entries, err := os.ReadDir(a.root)
	if err != nil {
		return nil, mapError(err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// StatFile reports whether a regular file exists at rel, and its size.
func (a *Local) StatFile(rel string) (int64, bool, error) {
	full, err := a.resolve(rel)
	if err != nil {
		return 0, false, err
	}

	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, false, nil
		}
		return 0, false, mapError(err)
	}
	if info.IsDir() {
		return 0, false, fmt.Errorf("%w: %s", domain.ErrNotFile, rel)
	}
	return info.Size(), true, nil
}

// EnsureDir creates the directory at rel together with any parents.
func (a *Local) EnsureDir(rel string) error {
	full, err := a.resolve(rel)
	if err != nil {
		return err
	}
	return mapError(os.MkdirAll(full, 0755))
}

// CopyFrom copies the source file to rel. The data lands in a temp file
// in the destination directory first and is renamed into place, so a
// partial copy is never visible under the final name. onWrite, when not
// nil, receives the byte count of every chunk written.
func (a *Local) CopyFrom(srcPath, rel string, onWrite func(n int64)) error {
	full, err := a.resolve(rel)
	if err != nil {
		return err
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return mapError(err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return mapError(err)
	}

	tempPath := full + ".insorter.tmp"
	dst, err := os.Create(tempPath)
	if err != nil {
		return mapError(err)
	}

	var w io.Writer = dst
	if onWrite != nil {
		w = &countingWriter{w: dst, fn: onWrite}
	}

	_, copyErr := io.Copy(w, src)
	closeErr := dst.Close()

	if copyErr != nil {
		os.Remove(tempPath)
		return copyErr
	}
	if closeErr != nil {
		os.Remove(tempPath)
		return closeErr
	}

	if err := os.Rename(tempPath, full); err != nil {
		os.Remove(tempPath)
		return mapError(err)
	}

	// Preserve the source modification time so re-ingesting after a move
	// still resolves the same fallback date.
	if info, err := os.Stat(srcPath); err == nil {
		os.Chtimes(full, info.ModTime(), info.ModTime())
	}

	return nil
}

// MoveFrom moves the source file to rel. A plain rename is attempted
// first; when source and destination live on different filesystems (a
// card and an archive disk always do) it falls back to copy-then-remove.
func (a *Local) MoveFrom(srcPath, rel string, onWrite func(n int64)) error {
	full, err := a.resolve(rel)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		return mapError(err)
	}

	err = os.Rename(srcPath, full)
	if err == nil {
		if onWrite != nil {
			if info, statErr := os.Stat(full); statErr == nil {
				onWrite(info.Size())
			}
		}
		return nil
	}

	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return mapError(err)
	}

	if err := a.CopyFrom(srcPath, rel, onWrite); err != nil {
		return err
	}
	return mapError(os.Remove(srcPath))
}

type countingWriter struct {
	w  io.Writer
	fn func(n int64)
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if n > 0 {
		c.fn(int64(n))
	}
	return n, err
}

// mapError converts OS errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %v", domain.ErrNotFound, err)
	}
	if os.IsPermission(err) {
		return fmt.Errorf("%w: %v", domain.ErrPermissionDenied, err)
	}
	return err
}

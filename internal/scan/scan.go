// Package scan enumerates the source tree and collects the filesystem
// timestamps the date resolver needs. The creation-time lookup is
// platform-specific and lives behind the birthtime adapter.
package scan

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pverhoeven/insorter/internal/core/dates"
)

// File is one enumerated source file, before classification.
type File struct {
	// Path is the absolute source path.
	Path string

	// Rel is the slash-separated path relative to the source root.
	Rel string

	// Name is the base filename.
	Name string

	// Size in bytes.
	Size int64

	// Times carries the timestamps for date fallback.
	Times dates.Timestamps
}

// Subtree returns the top-level folder under the source root containing
// the file, or "." for files sitting directly in the root.
func (f File) Subtree() string {
	if i := strings.IndexByte(f.Rel, '/'); i >= 0 {
		return f.Rel[:i]
	}
	return "."
}

// Walk enumerates every regular file under root, in lexical order. Files
// that vanish between readdir and stat are skipped; any other walk error
// aborts the enumeration, so the duplicate index is never built from a
// partial listing.
func Walk(root string) ([]File, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []File
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil // vanished between readdir and stat
		}

		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}

		birth, hasBirth := birthtime(info)
		files = append(files, File{
			Path: path,
			Rel:  filepath.ToSlash(rel),
			Name: d.Name(),
			Size: info.Size(),
			Times: dates.Timestamps{
				Birth:    birth,
				HasBirth: hasBirth,
				Mod:      info.ModTime(),
			},
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Package classify decides which source files belong to the managed
// Insta360 file set.
package classify

import (
	"path/filepath"
	"strings"
)

// Classifier matches filenames against the managed extension and exact
// name sets and filters out files living under excluded metadata folders.
// It performs no I/O.
type Classifier struct {
	extensions  map[string]bool
	names       map[string]bool
	excludeDirs map[string]bool
}

// New creates a Classifier. Extensions must include the leading dot;
// extensions and names are matched case-insensitively. Exclude dirs are
// matched exactly against every path element.
func New(extensions, names, excludeDirs []string) *Classifier {
	c := &Classifier{
		extensions:  make(map[string]bool, len(extensions)),
		names:       make(map[string]bool, len(names)),
		excludeDirs: make(map[string]bool, len(excludeDirs)),
	}
	for _, ext := range extensions {
		c.extensions[strings.ToLower(ext)] = true
	}
	for _, name := range names {
		c.names[strings.ToLower(name)] = true
	}
	for _, dir := range excludeDirs {
		c.excludeDirs[dir] = true
	}
	return c
}

// Managed reports whether the file at path (relative to the source root)
// is part of the managed set: a recognized extension and no excluded
// folder anywhere in its path.
func (c *Classifier) Managed(path string) bool {
	if !c.MatchesName(filepath.Base(path)) {
		return false
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return true
	}
	for _, elem := range strings.Split(filepath.ToSlash(dir), "/") {
		if c.excludeDirs[elem] {
			return false
		}
	}
	return true
}

// MatchesName reports whether the bare filename carries a managed
// extension or is one of the exact managed names, ignoring its location.
// Camera sidecar files such as fileinfo_list.list belong to the recording
// and travel with it even though their extension does not.
func (c *Classifier) MatchesName(name string) bool {
	lower := strings.ToLower(name)
	return c.extensions[filepath.Ext(lower)] || c.names[lower]
}

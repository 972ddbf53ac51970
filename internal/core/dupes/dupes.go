// Package dupes guards against the same camera-assigned filename arriving
// from two different source subtrees, which would silently overwrite an
// unrelated file at the shared destination path.
package dupes

import (
	"sort"

	"github.com/pverhoeven/insorter/internal/domain"
)

// Index maps each managed filename to the set of top-level source
// subtrees containing it. It is built once over the complete source
// listing before any plan entry is produced, so the duplicate check
// always sees the whole set.
type Index struct {
	subtrees map[string]map[string]bool
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{subtrees: make(map[string]map[string]bool)}
}

// Build indexes a complete source listing.
func Build(files []domain.ManagedFile) *Index {
	x := NewIndex()
	for _, f := range files {
		x.Add(f.Name, f.Subtree)
	}
	return x
}

// Add records one occurrence of name under the given top-level subtree.
func (x *Index) Add(name, subtree string) {
	set, ok := x.subtrees[name]
	if !ok {
		set = make(map[string]bool)
		x.subtrees[name] = set
	}
	set[subtree] = true
}

// IsDuplicate reports whether name occurs under more than one distinct
// top-level subtree. Multiple occurrences within a single subtree cannot
// happen for regular files and are not flagged.
func (x *Index) IsDuplicate(name string) bool {
	return len(x.subtrees[name]) > 1
}

// Subtrees returns the sorted subtrees containing name.
func (x *Index) Subtrees(name string) []string {
	set := x.subtrees[name]
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Duplicates returns one error per conflicting filename, sorted by name.
func (x *Index) Duplicates() []*domain.DuplicateNameError {
	var errs []*domain.DuplicateNameError
	for name := range x.subtrees {
		if x.IsDuplicate(name) {
			errs = append(errs, &domain.DuplicateNameError{
				Name:     name,
				Subtrees: x.Subtrees(name),
			})
		}
	}
	sort.Slice(errs, func(i, j int) bool { return errs[i].Name < errs[j].Name })
	return errs
}

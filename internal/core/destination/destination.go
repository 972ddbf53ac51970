// Package destination maps an archive date to its owning destination
// folder, reusing existing (possibly human-renamed) folders and refusing
// to guess between ambiguous ones.
package destination

import (
	"sort"

	"github.com/pverhoeven/insorter/internal/core/datefolder"
	"github.com/pverhoeven/insorter/internal/domain"
)

// Resolve picks the archive folder owning date among the existing
// immediate children of the destination root.
//
// Exactly one match: that folder is reused verbatim, preserving any
// human-added suffix. No match: a new bare YYYY-MM-DD folder is proposed;
// suffixes are added only by manual editing afterwards. More than one
// match: an AmbiguityError — the date is owned by multiple folders and
// the resolver never picks one silently.
func Resolve(date domain.Date, children []string) (domain.ArchiveDateFolder, error) {
	var matches []string
	for _, name := range children {
		if datefolder.OwnsDate(name, date) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return domain.ArchiveDateFolder{
			Date:   date,
			Name:   date.String(),
			Exists: false,
		}, nil

	case 1:
		name := matches[0]
		_, suffix, _ := datefolder.Split(name)
		return domain.ArchiveDateFolder{
			Date:   date,
			Suffix: suffix,
			Name:   name,
			Exists: true,
		}, nil

	default:
		sort.Strings(matches)
		return domain.ArchiveDateFolder{}, &domain.AmbiguousDateFolderError{
			Date:    date,
			Folders: matches,
		}
	}
}

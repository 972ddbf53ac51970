// Package dates derives the archive date for a managed file.
package dates

import (
	"regexp"
	"time"

	"github.com/pverhoeven/insorter/internal/domain"
)

// Timestamps carries the filesystem timestamps relevant to date
// resolution, collected by the platform-specific scan adapter.
type Timestamps struct {
	// Birth is the creation-like timestamp where the OS exposes one.
	Birth    time.Time
	HasBirth bool

	// Mod is the last-modified timestamp, always available.
	Mod time.Time
}

// namePattern matches the Insta360 naming convention: a fixed prefix
// token, an underscore, an 8-digit date block. Further fields (time of
// day, sequence numbers) are ignored.
var namePattern = regexp.MustCompile(`^(?:VID|IMG|LRV|PRO)_(\d{8})(?:[_.].*)?$`)

const blockLayout = "20060102"

// FromName extracts the embedded date from a filename following the
// naming convention. Digit blocks that do not form a real calendar date
// do not count as a match.
func FromName(name string) (domain.Date, bool) {
	m := namePattern.FindStringSubmatch(name)
	if m == nil {
		return domain.Date{}, false
	}
	t, err := time.Parse(blockLayout, m[1])
	if err != nil {
		return domain.Date{}, false
	}
	return domain.DateOf(t), true
}

// Resolve applies the date precedence rules: the filename's embedded date
// wins; otherwise the creation timestamp where available; otherwise the
// modification timestamp. Only the calendar date is retained.
func Resolve(name string, ts Timestamps) domain.Date {
	if d, ok := FromName(name); ok {
		return d
	}
	if ts.HasBirth {
		return domain.DateOf(ts.Birth)
	}
	return domain.DateOf(ts.Mod)
}

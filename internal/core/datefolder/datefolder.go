// Package datefolder holds the single shared definition of what counts as
// a valid top-level archive date folder. Both the destination resolver and
// the structure repair planner use it, so the two can never disagree.
package datefolder

import (
	"regexp"
	"strings"

	"github.com/pverhoeven/insorter/internal/domain"
)

// pattern accepts the canonical YYYY-MM-DD form, optionally followed by a
// hyphen or space separator and arbitrary free text.
var pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}([ -].*)?$`)

// Matches reports whether name is shaped like a date folder. The digit
// block is not calendar-validated here; use Split when the date itself
// matters.
func Matches(name string) bool {
	return pattern.MatchString(name)
}

// Split breaks a date-folder name into its calendar date and free-text
// suffix. Names whose digit block is not a real calendar date do not
// split.
func Split(name string) (domain.Date, string, bool) {
	if !pattern.MatchString(name) {
		return domain.Date{}, "", false
	}
	date, err := domain.ParseDate(name[:len(domain.DateLayout)])
	if err != nil {
		return domain.Date{}, "", false
	}
	suffix := ""
	if len(name) > len(domain.DateLayout)+1 {
		suffix = name[len(domain.DateLayout)+1:]
	}
	return date, suffix, true
}

// OwnsDate reports whether an existing folder name owns the given date:
// either the canonical form exactly, or the canonical form followed by a
// hyphen or space separator. A longer digit run such as "2024-10-119"
// does not own 2024-10-11.
func OwnsDate(name string, date domain.Date) bool {
	s := date.String()
	if name == s {
		return true
	}
	return strings.HasPrefix(name, s+"-") || strings.HasPrefix(name, s+" ")
}

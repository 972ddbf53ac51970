package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical folder spelling of an archive date.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time-of-day component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates a timestamp to its calendar date in local time.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses a canonical YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// String returns the canonical YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// ManagedFile is a classified source file together with its resolved
// archive date. Instances are immutable once built by the scan phase.
type ManagedFile struct {
	// SourcePath is the absolute path of the file on the source.
	SourcePath string

	// Subtree is the top-level folder under the source root that contains
	// the file, or "." for files sitting directly in the root. Used by the
	// duplicate-name guard to tell two cards apart.
	Subtree string

	// Name is the base filename, preserved verbatim in the archive.
	Name string

	// Size in bytes.
	Size int64

	// Date is the resolved archive date (filename date block if present,
	// otherwise the best available filesystem timestamp).
	Date Date
}

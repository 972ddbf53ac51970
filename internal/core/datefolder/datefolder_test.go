package datefolder

import (
	"testing"

	"github.com/pverhoeven/insorter/internal/domain"
)

func TestMatches(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"2024-10-11", true},
		{"2024-10-11-dup", true},
		{"2024-10-11 Paris Trip", true},
		{"2024-10-11Paris", false},
		{"2024-10-119", false},
		{"20241011", false},
		{"misc", false},
		{"", false},
	}

	for _, c := range cases {
		if got := Matches(c.name); got != c.want {
			t.Errorf("Matches(%q) = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestSplit(t *testing.T) {
	date, suffix, ok := Split("2024-10-11 Paris Trip")
	if !ok {
		t.Fatal("expected split to succeed")
	}
	if date.String() != "2024-10-11" {
		t.Errorf("unexpected date: %s", date)
	}
	if suffix != "Paris Trip" {
		t.Errorf("unexpected suffix: %q", suffix)
	}

	if _, suffix, ok = Split("2024-10-11"); !ok || suffix != "" {
		t.Errorf("bare date folder should split with empty suffix, got ok=%v suffix=%q", ok, suffix)
	}

	// Shaped like a date but not a real calendar date.
	if _, _, ok = Split("2024-13-41-junk"); ok {
		t.Error("invalid calendar date should not split")
	}
}

func TestOwnsDate(t *testing.T) {
	date, err := domain.ParseDate("2024-10-11")
	if err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		folder string
		want   bool
	}{
		{"2024-10-11", true},
		{"2024-10-11-dup", true},
		{"2024-10-11 Paris Trip", true},
		{"2024-10-119", false},
		{"2024-10-12", false},
		{"2024-10-11_x", false},
	}

	for _, c := range cases {
		if got := OwnsDate(c.folder, date); got != c.want {
			t.Errorf("OwnsDate(%q) = %v, want %v", c.folder, got, c.want)
		}
	}
}

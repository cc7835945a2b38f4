package workday

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPrevious(t *testing.T) {
	cases := []struct {
		name  string
		today time.Time
		want  time.Time
		ok    bool
	}{
		{"monday resolves to previous friday", date(2025, time.June, 9), date(2025, time.June, 6), true},
		{"tuesday resolves to monday", date(2025, time.June, 10), date(2025, time.June, 9), true},
		{"wednesday resolves to tuesday", date(2025, time.June, 11), date(2025, time.June, 10), true},
		{"thursday resolves to wednesday", date(2025, time.June, 12), date(2025, time.June, 11), true},
		{"friday resolves to thursday", date(2025, time.June, 13), date(2025, time.June, 12), true},
		{"saturday resolves to nothing", date(2025, time.June, 14), time.Time{}, false},
		{"sunday resolves to nothing", date(2025, time.June, 15), time.Time{}, false},
	}

	for _, c := range cases {
		got, ok := Previous(c.today)
		if ok != c.ok {
			t.Errorf("%s: Previous(%v) ok = %v, want %v", c.name, c.today, ok, c.ok)
			continue
		}
		if ok && !got.Equal(c.want) {
			t.Errorf("%s: Previous(%v) = %v, want %v", c.name, c.today, got, c.want)
		}
	}
}

func TestPreviousTruncatesTimeOfDay(t *testing.T) {
	today := time.Date(2025, time.June, 10, 8, 25, 13, 0, time.UTC)
	got, ok := Previous(today)
	if !ok {
		t.Fatalf("Previous(%v) ok = false, want true", today)
	}
	want := date(2025, time.June, 9)
	if !got.Equal(want) {
		t.Errorf("Previous(%v) = %v, want %v", today, got, want)
	}
}

func TestPreviousMondayAcrossMonthBoundary(t *testing.T) {
	// Monday 2025-09-01 resolves to Friday 2025-08-29.
	got, ok := Previous(date(2025, time.September, 1))
	if !ok {
		t.Fatal("Previous(monday) ok = false, want true")
	}
	want := date(2025, time.August, 29)
	if !got.Equal(want) {
		t.Errorf("Previous(2025-09-01) = %v, want %v", got, want)
	}
}

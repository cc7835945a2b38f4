// Package workday encodes the "which day am I auditing" policy shared by all
// compliance jobs: the previous working day on a Mon-Fri week.
package workday

import (
	"time"
)

// Previous returns the working day preceding today, or ok=false when today is
// a weekend (the job schedules already exclude weekends; this is the
// defensive backstop). Monday resolves to the previous Friday.
func Previous(today time.Time) (time.Time, bool) {
	switch today.Weekday() {
	case time.Saturday, time.Sunday:
		return time.Time{}, false
	case time.Monday:
		return truncateToDate(today.AddDate(0, 0, -3)), true
	default:
		return truncateToDate(today.AddDate(0, 0, -1)), true
	}
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
// The candidate queries push the alert guard into SQL (alert column IS NULL)
// so a re-run over an already-alerted date is a cheap no-op.
type AttendanceRepository interface {
	// GetByID retrieves attendance by ID with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Attendance, error)

	// ListUnderworked returns records for the date with a clock-out whose
	// worked minutes are strictly below maxMinutes and no underwork alert yet.
	ListUnderworked(ctx context.Context, date time.Time, maxMinutes int) ([]Attendance, error)

	// ListMissedClockOut returns records for the date with a clock-in, no
	// clock-out and no missed-clock-out alert yet.
	ListMissedClockOut(ctx context.Context, date time.Time) ([]Attendance, error)

	// ListEarlyClockOut returns records for the date with a clock-out whose
	// worked minutes are strictly below maxMinutes and no early-clock-out
	// alert yet.
	ListEarlyClockOut(ctx context.Context, date time.Time, maxMinutes int) ([]Attendance, error)

	// ListLateClockIn returns records for the date whose clock-in time of day
	// is after threshold ("15:04:05") and no late-clock-in alert yet.
	ListLateClockIn(ctx context.Context, date time.Time, threshold string) ([]Attendance, error)

	// ExistsForDate reports whether the employee has any attendance row for
	// the date.
	ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// MarkAlertSent stamps the guard column for the rule. Guards are only
	// ever set, never cleared.
	MarkAlertSent(ctx context.Context, id string, rule AlertRule, sentAt time.Time) error

	// SetRegularized flips the regularized flag on an attendance record.
	SetRegularized(ctx context.Context, id string, companyID string) error
}

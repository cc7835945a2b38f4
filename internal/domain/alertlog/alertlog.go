// Package alertlog holds the persisted guard for the unrecorded-absence
// rule. The other four compliance rules stamp a column on the attendance row
// itself; an absent employee has no row, so the guard lives in its own table
// keyed by (employee, date).
package alertlog

import (
	"context"
	"time"
)

type AbsenceAlert struct {
	ID         string
	EmployeeID string
	Date       time.Time
	SentAt     time.Time
}

type AbsenceAlertRepository interface {
	// Exists reports whether an absence alert was already sent to the
	// employee for the date.
	Exists(ctx context.Context, employeeID string, date time.Time) (bool, error)

	Create(ctx context.Context, alert AbsenceAlert) error
}

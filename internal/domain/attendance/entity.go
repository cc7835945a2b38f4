package attendance

import (
	"time"
)

// AlertRule identifies which compliance rule an alert guard belongs to.
type AlertRule string

const (
	RuleUnderwork      AlertRule = "underwork"
	RuleMissedClockOut AlertRule = "missed_clock_out"
	RuleEarlyClockOut  AlertRule = "early_clock_out"
	RuleLateClockIn    AlertRule = "late_clock_in"
)

type Attendance struct {
	ID          string
	EmployeeID  string
	CompanyID   string
	Date        time.Time
	ClockIn     *time.Time
	ClockOut    *time.Time
	WorkMinutes *int
	Regularized bool

	// Alert guards. Each is stamped at most once by its evaluator and is the
	// sole thing preventing a repeat notification for that rule.
	UnderworkAlertSentAt      *time.Time
	MissedClockOutAlertSentAt *time.Time
	EarlyClockOutAlertSentAt  *time.Time
	LateClockInAlertSentAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	EmployeeName *string
}

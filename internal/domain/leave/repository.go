package leave

import (
	"context"
	"time"
)

// LeaveRepository exposes the single read this subsystem needs from the leave
// module: whether an employee had approved leave covering a date.
type LeaveRepository interface {
	HasApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyRegularized = errors.New("attendance record is already regularized")
	ErrUnknownAlertRule   = errors.New("unknown alert rule")
)

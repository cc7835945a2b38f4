package attendance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kriyahr/workforce-backend-go/internal/domain/attendance"
)

// Service exposes the regularization approval: a manual action that flips the
// regularized flag on a corrected attendance record. The compliance queries
// select on the alert guards, not this flag, so a correction landing after
// the nightly run does not retract an already-sent alert.
type Service struct {
	attendanceRepo attendance.AttendanceRepository
}

func NewService(attendanceRepo attendance.AttendanceRepository) *Service {
	return &Service{attendanceRepo: attendanceRepo}
}

// ApproveRegularization marks the attendance record as regularized.
func (s *Service) ApproveRegularization(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	att, err := s.attendanceRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	if att.Regularized {
		return attendance.Attendance{}, attendance.ErrAlreadyRegularized
	}

	if err := s.attendanceRepo.SetRegularized(ctx, id, companyID); err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to approve regularization: %w", err)
	}

	att.Regularized = true
	slog.Info("Attendance regularization approved", "attendance_id", id, "employee_id", att.EmployeeID)
	return att, nil
}

package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kriyahr/workforce-backend-go/internal/domain/alertlog"
	"github.com/kriyahr/workforce-backend-go/internal/domain/employee"
)

// CheckUnrecordedAbsence flags active employees with neither an attendance
// record nor approved leave on the audit date. Unlike the other rules it
// iterates employees rather than attendance rows, so the company-holiday
// exclusion is re-checked per employee and the idempotency guard lives in a
// dated alert log instead of a column on the record.
func (s *Service) CheckUnrecordedAbsence(ctx context.Context) error {
	const job = "check_unrecorded_absence"

	date, ok, err := s.auditDate(ctx, job)
	if err != nil || !ok {
		return err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	// Company holiday answers are the same for every employee of a company.
	companyHolidays := make(map[string]bool)

	alerted := 0
	for _, emp := range employees {
		isHoliday, found := companyHolidays[emp.CompanyID]
		if !found {
			isHoliday, err = s.holidayRepo.IsCompanyHoliday(ctx, emp.CompanyID, date)
			if err != nil {
				slog.Error("Cron: failed to check company holiday, skipping employee",
					"employee_id", emp.ID, "company_id", emp.CompanyID, "error", err)
				continue
			}
			companyHolidays[emp.CompanyID] = isHoliday
		}
		if isHoliday {
			continue
		}

		absent, err := s.isUnrecordedAbsence(ctx, emp.ID, date)
		if err != nil {
			slog.Error("Cron: failed to evaluate absence, skipping employee",
				"employee_id", emp.ID, "error", err)
			continue
		}
		if !absent {
			continue
		}

		if err := s.notifyAbsence(ctx, emp, date); err != nil {
			slog.Error("Cron: failed to process absence alert",
				"employee_id", emp.ID, "error", err)
			continue
		}
		alerted++
	}

	slog.Info("Cron: unrecorded absence check completed",
		"date", date.Format("2006-01-02"), "employees", len(employees), "alerted", alerted)
	return nil
}

// isUnrecordedAbsence applies the rule condition and the alert-log guard.
func (s *Service) isUnrecordedAbsence(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	hasAttendance, err := s.attendanceRepo.ExistsForDate(ctx, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}
	if hasAttendance {
		return false, nil
	}

	onLeave, err := s.leaveRepo.HasApprovedLeave(ctx, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}
	if onLeave {
		return false, nil
	}

	alreadyAlerted, err := s.absenceAlertRepo.Exists(ctx, employeeID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check absence alert log: %w", err)
	}
	return !alreadyAlerted, nil
}

func (s *Service) notifyAbsence(ctx context.Context, emp employee.Employee, date time.Time) error {
	if emp.Email == nil || *emp.Email == "" {
		slog.Warn("Cron: employee has no email address, skipping",
			"employee_id", emp.ID, "rule", "unrecorded_absence")
		return nil
	}

	if s.mail == nil {
		slog.Warn("Cron: mail gateway not configured, skipping notification",
			"employee_id", emp.ID, "rule", "unrecorded_absence")
		return nil
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		err := s.mail.Send(*emp.Email, "Unrecorded absence", "unrecorded_absence.html", map[string]any{
			"EmployeeName": emp.FullName,
			"Date":         date.Format("2006-01-02"),
		})
		if err != nil {
			return fmt.Errorf("failed to send absence notification: %w", err)
		}

		return s.absenceAlertRepo.Create(txCtx, alertlog.AbsenceAlert{
			ID:         uuid.NewString(),
			EmployeeID: emp.ID,
			Date:       date,
			SentAt:     s.now(),
		})
	})
}

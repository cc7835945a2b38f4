package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/domain/alertlog"
	"github.com/kriyahr/workforce-backend-go/internal/domain/attendance"
	"github.com/kriyahr/workforce-backend-go/internal/domain/employee"
	"github.com/kriyahr/workforce-backend-go/internal/domain/holiday"
	"github.com/kriyahr/workforce-backend-go/internal/domain/leave"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/database"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/mailer"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/workday"
	"github.com/kriyahr/workforce-backend-go/internal/service/settings"
	"github.com/shopspring/decimal"
)

// Configuration keys consumed by the evaluators.
const (
	KeyMinimumWorkHours     = "MINIMUM_WORK_HOURS_PER_DAY"
	KeyLateClockInThreshold = "LATE_LOGIN_THRESHOLD_TIME"
	KeyEarlyClockOutHours   = "EARLY_LOGOUT_THRESHOLD_HOURS"
)

var (
	defaultMinimumWorkHours   = decimal.NewFromInt(8)
	defaultEarlyClockOutHours = decimal.NewFromInt(8)
)

// defaultLateClockIn is 09:30 as a clock time.
var defaultLateClockIn = time.Date(0, time.January, 1, 9, 30, 0, 0, time.UTC)

// Service runs the five attendance compliance evaluators. Each follows the
// same template: resolve the audit date, short-circuit on a global holiday,
// query candidates with the alert guard pushed into SQL, then notify and
// stamp the guard per record inside one transaction. A failing record is
// logged and skipped; it never aborts the batch.
type Service struct {
	attendanceRepo   attendance.AttendanceRepository
	employeeRepo     employee.EmployeeRepository
	holidayRepo      holiday.HolidayRepository
	leaveRepo        leave.LeaveRepository
	absenceAlertRepo alertlog.AbsenceAlertRepository
	settings         *settings.Provider
	mail             mailer.Mailer
	tx               database.TxManager

	now func() time.Time
}

func NewService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	leaveRepo leave.LeaveRepository,
	absenceAlertRepo alertlog.AbsenceAlertRepository,
	settingsProvider *settings.Provider,
	mail mailer.Mailer,
	tx database.TxManager,
) *Service {
	return &Service{
		attendanceRepo:   attendanceRepo,
		employeeRepo:     employeeRepo,
		holidayRepo:      holidayRepo,
		leaveRepo:        leaveRepo,
		absenceAlertRepo: absenceAlertRepo,
		settings:         settingsProvider,
		mail:             mail,
		tx:               tx,
		now:              time.Now,
	}
}

// auditDate resolves the previous working day and applies the global-holiday
// short-circuit. ok=false means there is nothing to audit on this run.
func (s *Service) auditDate(ctx context.Context, job string) (time.Time, bool, error) {
	date, ok := workday.Previous(s.now())
	if !ok {
		slog.Info("Cron: weekend run, nothing to audit", "job", job)
		return time.Time{}, false, nil
	}

	global, err := s.holidayRepo.IsGlobalHoliday(ctx, date)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to check global holiday: %w", err)
	}
	if global {
		slog.Info("Cron: audit date is a global holiday, skipping", "job", job, "date", date.Format("2006-01-02"))
		return time.Time{}, false, nil
	}

	return date, true, nil
}

// notifyAndMark delivers one rule notification and stamps the record's alert
// guard in the same transaction. When the mail gateway is absent the send is
// skipped, logged and the guard stays unset so the record remains a candidate.
func (s *Service) notifyAndMark(ctx context.Context, att attendance.Attendance, rule attendance.AlertRule, subject, template string, data map[string]any) error {
	emp, err := s.employeeRepo.GetByID(ctx, att.EmployeeID)
	if err != nil {
		slog.Warn("Cron: employee not found for attendance record, skipping",
			"attendance_id", att.ID, "employee_id", att.EmployeeID, "rule", rule, "error", err)
		return nil
	}

	if emp.Email == nil || *emp.Email == "" {
		slog.Warn("Cron: employee has no email address, skipping",
			"employee_id", emp.ID, "rule", rule)
		return nil
	}

	if s.mail == nil {
		slog.Warn("Cron: mail gateway not configured, skipping notification",
			"employee_id", emp.ID, "rule", rule)
		return nil
	}

	data["EmployeeName"] = emp.FullName

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.mail.Send(*emp.Email, subject, template, data); err != nil {
			return fmt.Errorf("failed to send %s notification: %w", rule, err)
		}
		if err := s.attendanceRepo.MarkAlertSent(txCtx, att.ID, rule, s.now()); err != nil {
			return fmt.Errorf("failed to mark %s alert sent: %w", rule, err)
		}
		return nil
	})
}

// hoursFromMinutes formats worked minutes as decimal hours for templates.
func hoursFromMinutes(minutes *int) string {
	if minutes == nil {
		return "0"
	}
	return decimal.NewFromInt(int64(*minutes)).Div(decimal.NewFromInt(60)).Round(2).String()
}

// minutesFromHours converts a decimal hour threshold to whole minutes for the
// strict less-than comparison in SQL.
func minutesFromHours(hours decimal.Decimal) int {
	return int(hours.Mul(decimal.NewFromInt(60)).IntPart())
}

// CheckUnderworkedHours flags records whose worked time is strictly below the
// configured daily minimum.
func (s *Service) CheckUnderworkedHours(ctx context.Context) error {
	const job = "check_underworked_hours"

	date, ok, err := s.auditDate(ctx, job)
	if err != nil || !ok {
		return err
	}

	minHours := s.settings.Number(ctx, KeyMinimumWorkHours, defaultMinimumWorkHours)
	candidates, err := s.attendanceRepo.ListUnderworked(ctx, date, minutesFromHours(minHours))
	if err != nil {
		return fmt.Errorf("failed to list underworked attendances: %w", err)
	}

	alerted := 0
	for _, att := range candidates {
		err := s.notifyAndMark(ctx, att, attendance.RuleUnderwork,
			"Working hours below daily minimum", "underwork.html", map[string]any{
				"Date":         att.Date.Format("2006-01-02"),
				"WorkedHours":  hoursFromMinutes(att.WorkMinutes),
				"MinimumHours": minHours.String(),
			})
		if err != nil {
			slog.Error("Cron: failed to process underwork alert",
				"attendance_id", att.ID, "employee_id", att.EmployeeID, "error", err)
			continue
		}
		alerted++
	}

	slog.Info("Cron: underworked hours check completed",
		"date", date.Format("2006-01-02"), "candidates", len(candidates), "alerted", alerted)
	return nil
}

// CheckMissedClockOut flags records with a clock-in but no clock-out.
func (s *Service) CheckMissedClockOut(ctx context.Context) error {
	const job = "check_missed_clock_out"

	date, ok, err := s.auditDate(ctx, job)
	if err != nil || !ok {
		return err
	}

	candidates, err := s.attendanceRepo.ListMissedClockOut(ctx, date)
	if err != nil {
		return fmt.Errorf("failed to list missed clock-outs: %w", err)
	}

	alerted := 0
	for _, att := range candidates {
		err := s.notifyAndMark(ctx, att, attendance.RuleMissedClockOut,
			"Missing clock-out", "missed_clock_out.html", map[string]any{
				"Date": att.Date.Format("2006-01-02"),
			})
		if err != nil {
			slog.Error("Cron: failed to process missed clock-out alert",
				"attendance_id", att.ID, "employee_id", att.EmployeeID, "error", err)
			continue
		}
		alerted++
	}

	slog.Info("Cron: missed clock-out check completed",
		"date", date.Format("2006-01-02"), "candidates", len(candidates), "alerted", alerted)
	return nil
}

// CheckEarlyClockOut flags records that clocked out with worked time strictly
// below the early clock-out threshold.
func (s *Service) CheckEarlyClockOut(ctx context.Context) error {
	const job = "check_early_clock_out"

	date, ok, err := s.auditDate(ctx, job)
	if err != nil || !ok {
		return err
	}

	threshold := s.settings.Number(ctx, KeyEarlyClockOutHours, defaultEarlyClockOutHours)
	candidates, err := s.attendanceRepo.ListEarlyClockOut(ctx, date, minutesFromHours(threshold))
	if err != nil {
		return fmt.Errorf("failed to list early clock-outs: %w", err)
	}

	alerted := 0
	for _, att := range candidates {
		err := s.notifyAndMark(ctx, att, attendance.RuleEarlyClockOut,
			"Early clock-out", "early_clock_out.html", map[string]any{
				"Date":        att.Date.Format("2006-01-02"),
				"WorkedHours": hoursFromMinutes(att.WorkMinutes),
			})
		if err != nil {
			slog.Error("Cron: failed to process early clock-out alert",
				"attendance_id", att.ID, "employee_id", att.EmployeeID, "error", err)
			continue
		}
		alerted++
	}

	slog.Info("Cron: early clock-out check completed",
		"date", date.Format("2006-01-02"), "candidates", len(candidates), "alerted", alerted)
	return nil
}

// CheckLateClockIn flags records whose clock-in time of day is after the
// configured threshold.
func (s *Service) CheckLateClockIn(ctx context.Context) error {
	const job = "check_late_clock_in"

	date, ok, err := s.auditDate(ctx, job)
	if err != nil || !ok {
		return err
	}

	threshold := s.settings.ClockTime(ctx, KeyLateClockInThreshold, defaultLateClockIn)
	thresholdStr := threshold.Format("15:04:05")

	candidates, err := s.attendanceRepo.ListLateClockIn(ctx, date, thresholdStr)
	if err != nil {
		return fmt.Errorf("failed to list late clock-ins: %w", err)
	}

	alerted := 0
	for _, att := range candidates {
		clockIn := ""
		if att.ClockIn != nil {
			clockIn = att.ClockIn.Format("15:04")
		}
		err := s.notifyAndMark(ctx, att, attendance.RuleLateClockIn,
			"Late clock-in", "late_clock_in.html", map[string]any{
				"Date":      att.Date.Format("2006-01-02"),
				"ClockIn":   clockIn,
				"Threshold": threshold.Format("15:04"),
			})
		if err != nil {
			slog.Error("Cron: failed to process late clock-in alert",
				"attendance_id", att.ID, "employee_id", att.EmployeeID, "error", err)
			continue
		}
		alerted++
	}

	slog.Info("Cron: late clock-in check completed",
		"date", date.Format("2006-01-02"), "candidates", len(candidates), "alerted", alerted)
	return nil
}

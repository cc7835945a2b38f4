package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kriyahr/workforce-backend-go/internal/domain/attendance"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.employee_id, a.company_id, a.date,
	a.clock_in, a.clock_out, a.work_minutes, a.regularized,
	a.underwork_alert_sent_at, a.missed_clock_out_alert_sent_at,
	a.early_clock_out_alert_sent_at, a.late_clock_in_alert_sent_at,
	a.created_at, a.updated_at`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CompanyID, &att.Date,
		&att.ClockIn, &att.ClockOut, &att.WorkMinutes, &att.Regularized,
		&att.UnderworkAlertSentAt, &att.MissedClockOutAlertSentAt,
		&att.EarlyClockOutAlertSentAt, &att.LateClockInAlertSentAt,
		&att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.id = $1 AND a.company_id = $2
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

func (a *attendanceRepository) listCandidates(ctx context.Context, query string, args ...interface{}) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, rows.Err()
}

// ListUnderworked implements attendance.AttendanceRepository. The alert guard
// is part of the predicate so already-alerted rows never come back.
func (a *attendanceRepository) ListUnderworked(ctx context.Context, date time.Time, maxMinutes int) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.date = $1
		  AND a.clock_out IS NOT NULL
		  AND a.work_minutes < $2
		  AND a.underwork_alert_sent_at IS NULL
		ORDER BY a.employee_id
	`
	return a.listCandidates(ctx, query, date, maxMinutes)
}

// ListMissedClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListMissedClockOut(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.date = $1
		  AND a.clock_in IS NOT NULL
		  AND a.clock_out IS NULL
		  AND a.missed_clock_out_alert_sent_at IS NULL
		ORDER BY a.employee_id
	`
	return a.listCandidates(ctx, query, date)
}

// ListEarlyClockOut implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListEarlyClockOut(ctx context.Context, date time.Time, maxMinutes int) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.date = $1
		  AND a.clock_out IS NOT NULL
		  AND a.work_minutes < $2
		  AND a.early_clock_out_alert_sent_at IS NULL
		ORDER BY a.employee_id
	`
	return a.listCandidates(ctx, query, date, maxMinutes)
}

// ListLateClockIn implements attendance.AttendanceRepository. threshold is a
// clock time string ("15:04:05"); the comparison is on the time of day only.
func (a *attendanceRepository) ListLateClockIn(ctx context.Context, date time.Time, threshold string) ([]attendance.Attendance, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.date = $1
		  AND a.clock_in IS NOT NULL
		  AND a.clock_in::time > $2::time
		  AND a.late_clock_in_alert_sent_at IS NULL
		ORDER BY a.employee_id
	`
	return a.listCandidates(ctx, query, date, threshold)
}

// ExistsForDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ExistsForDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM attendances
			WHERE employee_id = $1
			  AND date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check attendance existence: %w", err)
	}

	return exists, nil
}

var alertColumns = map[attendance.AlertRule]string{
	attendance.RuleUnderwork:      "underwork_alert_sent_at",
	attendance.RuleMissedClockOut: "missed_clock_out_alert_sent_at",
	attendance.RuleEarlyClockOut:  "early_clock_out_alert_sent_at",
	attendance.RuleLateClockIn:    "late_clock_in_alert_sent_at",
}

// MarkAlertSent implements attendance.AttendanceRepository. The guard column
// is only written when still null; a concurrent or repeated stamp is a no-op.
func (a *attendanceRepository) MarkAlertSent(ctx context.Context, id string, rule attendance.AlertRule, sentAt time.Time) error {
	column, ok := alertColumns[rule]
	if !ok {
		return attendance.ErrUnknownAlertRule
	}

	q := GetQuerier(ctx, a.db)

	query := fmt.Sprintf(`
		UPDATE attendances
		SET %s = $1, updated_at = $1
		WHERE id = $2 AND %s IS NULL
	`, column, column)

	if _, err := q.Exec(ctx, query, sentAt, id); err != nil {
		return fmt.Errorf("failed to mark %s alert sent: %w", rule, err)
	}

	return nil
}

// SetRegularized implements attendance.AttendanceRepository.
func (a *attendanceRepository) SetRegularized(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET regularized = TRUE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, companyID).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return attendance.ErrAttendanceNotFound
		}
		return fmt.Errorf("failed to set regularized: %w", err)
	}

	return nil
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/domain/alertlog"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/database"
)

type absenceAlertRepository struct {
	db *database.DB
}

func NewAbsenceAlertRepository(db *database.DB) alertlog.AbsenceAlertRepository {
	return &absenceAlertRepository{db: db}
}

// Exists implements alertlog.AbsenceAlertRepository.
func (r *absenceAlertRepository) Exists(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM absence_alert_logs
			WHERE employee_id = $1 AND date = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check absence alert log: %w", err)
	}

	return exists, nil
}

// Create implements alertlog.AbsenceAlertRepository. The unique constraint on
// (employee_id, date) backs the idempotency guard at the database level.
func (r *absenceAlertRepository) Create(ctx context.Context, alert alertlog.AbsenceAlert) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO absence_alert_logs (id, employee_id, date, sent_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (employee_id, date) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, alert.ID, alert.EmployeeID, alert.Date, alert.SentAt); err != nil {
		return fmt.Errorf("failed to create absence alert log: %w", err)
	}

	return nil
}

package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/domain/leave"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// HasApprovedLeave implements leave.LeaveRepository.
func (l *leaveRepository) HasApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status = 'approved'
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved leave: %w", err)
	}

	return exists, nil
}

package task

import (
	"context"
	"time"
)

type TaskRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Task, error)

	// ListOverdueOpen returns tasks in an open state whose deadline is
	// strictly before now.
	ListOverdueOpen(ctx context.Context, now time.Time) ([]Task, error)

	// Close transitions the task to the auto-closed terminal state and stamps
	// auto_closed_at.
	Close(ctx context.Context, id string, closedAt time.Time) error
}

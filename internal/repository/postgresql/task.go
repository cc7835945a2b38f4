package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kriyahr/workforce-backend-go/internal/domain/task"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/database"
)

type taskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `
	id, company_id, title, assignee_id, assigner_id, status, deadline,
	auto_closed_at, created_at, updated_at`

// GetByID implements task.TaskRepository.
func (t *taskRepository) GetByID(ctx context.Context, id string, companyID string) (task.Task, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE id = $1 AND company_id = $2
	`

	var tk task.Task
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&tk.ID, &tk.CompanyID, &tk.Title, &tk.AssigneeID, &tk.AssignerID,
		&tk.Status, &tk.Deadline, &tk.AutoClosedAt, &tk.CreatedAt, &tk.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task by ID: %w", err)
	}

	return tk, nil
}

// ListOverdueOpen implements task.TaskRepository.
func (t *taskRepository) ListOverdueOpen(ctx context.Context, now time.Time) ([]task.Task, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE status = ANY($1)
		  AND deadline < $2
		ORDER BY deadline
	`

	open := task.OpenStatuses()
	statuses := make([]string, len(open))
	for i, s := range open {
		statuses[i] = string(s)
	}

	rows, err := q.Query(ctx, query, statuses, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query overdue tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		var tk task.Task
		err := rows.Scan(
			&tk.ID, &tk.CompanyID, &tk.Title, &tk.AssigneeID, &tk.AssignerID,
			&tk.Status, &tk.Deadline, &tk.AutoClosedAt, &tk.CreatedAt, &tk.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, tk)
	}

	return tasks, rows.Err()
}

// Close implements task.TaskRepository. The open-status predicate keeps the
// transition one-way even if the job overlaps itself.
func (t *taskRepository) Close(ctx context.Context, id string, closedAt time.Time) error {
	q := GetQuerier(ctx, t.db)

	query := `
		UPDATE tasks
		SET status = $1, auto_closed_at = $2, updated_at = $2
		WHERE id = $3 AND status = ANY($4)
		RETURNING id
	`

	open := task.OpenStatuses()
	statuses := make([]string, len(open))
	for i, s := range open {
		statuses[i] = string(s)
	}

	var closedID string
	err := q.QueryRow(ctx, query, string(task.StatusAutoClosed), closedAt, id, statuses).Scan(&closedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return task.ErrTaskNotFound
		}
		return fmt.Errorf("failed to close task: %w", err)
	}

	return nil
}

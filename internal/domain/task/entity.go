package task

import (
	"time"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	// StatusAutoClosed is terminal for the scheduler; only a human action can
	// move a task out of it.
	StatusAutoClosed Status = "auto_closed_deadline_passed"
)

// OpenStatuses are the states the auto-closer is allowed to close from.
func OpenStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress}
}

type Task struct {
	ID           string
	CompanyID    string
	Title        string
	AssigneeID   string
	AssignerID   string
	Status       Status
	Deadline     time.Time
	AutoClosedAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

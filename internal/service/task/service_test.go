package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/domain/employee"
	"github.com/kriyahr/workforce-backend-go/internal/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTaskRepo struct {
	overdue  []task.Task
	closed   map[string]time.Time
	closeErr map[string]error
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string, companyID string) (task.Task, error) {
	return task.Task{}, task.ErrTaskNotFound
}

func (f *fakeTaskRepo) ListOverdueOpen(ctx context.Context, now time.Time) ([]task.Task, error) {
	var result []task.Task
	for _, tk := range f.overdue {
		if tk.Deadline.Before(now) {
			result = append(result, tk)
		}
	}
	return result, nil
}

func (f *fakeTaskRepo) Close(ctx context.Context, id string, closedAt time.Time) error {
	if err := f.closeErr[id]; err != nil {
		return err
	}
	f.closed[id] = closedAt
	return nil
}

type fakeEmployeeRepo struct {
	byID map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.byID[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type sentMail struct {
	To       string
	Template string
}

type fakeMailer struct {
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) Send(to, subject, templateName string, data map[string]any) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sentMail{To: to, Template: templateName})
	return nil
}

func strPtr(s string) *string { return &s }

func newService(t *testing.T) (*Service, *fakeTaskRepo, *fakeMailer) {
	t.Helper()

	tasks := &fakeTaskRepo{
		closed:   map[string]time.Time{},
		closeErr: map[string]error{},
	}
	employees := &fakeEmployeeRepo{byID: map[string]employee.Employee{
		"emp-1": {ID: "emp-1", FullName: "Ana Silva", Email: strPtr("ana@example.com")},
		"emp-2": {ID: "emp-2", FullName: "Budi Santoso", Email: strPtr("budi@example.com")},
	}}
	mail := &fakeMailer{}

	s := NewService(tasks, employees, mail)
	s.now = func() time.Time {
		return time.Date(2025, time.June, 17, 1, 0, 0, 0, time.UTC)
	}
	return s, tasks, mail
}

func TestCloseOverdue(t *testing.T) {
	s, tasks, mail := newService(t)
	now := s.now()

	tasks.overdue = []task.Task{
		{ID: "task-1", Title: "Quarterly report", AssigneeID: "emp-1", AssignerID: "emp-2",
			Status: task.StatusTodo, Deadline: now.Add(-time.Second)},
		{ID: "task-2", Title: "Follow up", AssigneeID: "emp-1", AssignerID: "emp-1",
			Status: task.StatusInProgress, Deadline: now.Add(time.Hour)},
	}

	err := s.CloseOverdue(context.Background())
	require.NoError(t, err)

	// Only the task past its deadline transitions.
	assert.Equal(t, map[string]time.Time{"task-1": now}, tasks.closed)

	// Assignee and distinct assigner each get a notification.
	require.Len(t, mail.sent, 2)
	assert.Equal(t, "ana@example.com", mail.sent[0].To)
	assert.Equal(t, "task_auto_closed_assignee.html", mail.sent[0].Template)
	assert.Equal(t, "budi@example.com", mail.sent[1].To)
	assert.Equal(t, "task_auto_closed_assigner.html", mail.sent[1].Template)
}

func TestCloseOverdue_AssignerIsAssignee(t *testing.T) {
	s, tasks, mail := newService(t)
	now := s.now()

	tasks.overdue = []task.Task{
		{ID: "task-1", Title: "Self-assigned", AssigneeID: "emp-1", AssignerID: "emp-1",
			Status: task.StatusTodo, Deadline: now.Add(-time.Minute)},
	}

	err := s.CloseOverdue(context.Background())
	require.NoError(t, err)

	// One person, one notification.
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "task_auto_closed_assignee.html", mail.sent[0].Template)
}

func TestCloseOverdue_CloseFailureContinues(t *testing.T) {
	s, tasks, _ := newService(t)
	now := s.now()

	tasks.overdue = []task.Task{
		{ID: "task-1", AssigneeID: "emp-1", Status: task.StatusTodo, Deadline: now.Add(-time.Minute)},
		{ID: "task-2", AssigneeID: "emp-2", Status: task.StatusTodo, Deadline: now.Add(-time.Minute)},
	}
	tasks.closeErr["task-1"] = errors.New("deadlock detected")

	err := s.CloseOverdue(context.Background())
	require.NoError(t, err)

	_, ok := tasks.closed["task-2"]
	assert.True(t, ok)
}

func TestCloseOverdue_NotificationFailureDoesNotBlockClosure(t *testing.T) {
	s, tasks, mail := newService(t)
	now := s.now()

	tasks.overdue = []task.Task{
		{ID: "task-1", AssigneeID: "emp-1", Status: task.StatusTodo, Deadline: now.Add(-time.Minute)},
	}
	mail.sendErr = errors.New("smtp: connection refused")

	err := s.CloseOverdue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, now, tasks.closed["task-1"])
}

func TestCloseOverdue_NoMailGatewayStillCloses(t *testing.T) {
	s, tasks, _ := newService(t)
	s.mail = nil
	now := s.now()

	tasks.overdue = []task.Task{
		{ID: "task-1", AssigneeID: "emp-1", Status: task.StatusTodo, Deadline: now.Add(-time.Minute)},
	}

	err := s.CloseOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, now, tasks.closed["task-1"])
}

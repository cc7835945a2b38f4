package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kriyahr/workforce-backend-go/internal/domain/employee"
	"github.com/kriyahr/workforce-backend-go/internal/domain/task"
	"github.com/kriyahr/workforce-backend-go/internal/pkg/mailer"
)

// Service closes tasks whose deadline has passed. This job works on
// wall-clock "now", not the audit date: deadlines carry full timestamps.
type Service struct {
	taskRepo     task.TaskRepository
	employeeRepo employee.EmployeeRepository
	mail         mailer.Mailer

	now func() time.Time
}

func NewService(taskRepo task.TaskRepository, employeeRepo employee.EmployeeRepository, mail mailer.Mailer) *Service {
	return &Service{
		taskRepo:     taskRepo,
		employeeRepo: employeeRepo,
		mail:         mail,
		now:          time.Now,
	}
}

// CloseOverdue transitions every open task past its deadline to the
// auto-closed terminal state. The transition commits unconditionally; the
// notifications afterwards are fire-and-forget with logged failure.
func (s *Service) CloseOverdue(ctx context.Context) error {
	now := s.now()

	overdue, err := s.taskRepo.ListOverdueOpen(ctx, now)
	if err != nil {
		return fmt.Errorf("failed to list overdue tasks: %w", err)
	}

	if len(overdue) == 0 {
		slog.Info("Cron: no overdue open tasks found")
		return nil
	}

	closed := 0
	for _, tk := range overdue {
		if err := s.taskRepo.Close(ctx, tk.ID, now); err != nil {
			slog.Error("Cron: failed to auto-close task",
				"task_id", tk.ID, "assignee_id", tk.AssigneeID, "error", err)
			continue
		}
		closed++

		s.notifyClosure(ctx, tk)
	}

	slog.Info("Cron: auto-closed overdue tasks", "count", closed)
	return nil
}

// notifyClosure mails the assignee and, when distinct, the assigner. Failures
// here never roll back the status transition.
func (s *Service) notifyClosure(ctx context.Context, tk task.Task) {
	if s.mail == nil {
		slog.Warn("Cron: mail gateway not configured, skipping task closure notification", "task_id", tk.ID)
		return
	}

	assignee, err := s.employeeRepo.GetByID(ctx, tk.AssigneeID)
	if err != nil {
		slog.Warn("Cron: assignee not found for closed task", "task_id", tk.ID, "assignee_id", tk.AssigneeID, "error", err)
	} else {
		s.send(tk, assignee, "Task closed: deadline passed", "task_auto_closed_assignee.html", map[string]any{
			"AssigneeName": assignee.FullName,
			"TaskTitle":    tk.Title,
			"Deadline":     tk.Deadline.Format("2006-01-02 15:04"),
		})
	}

	if tk.AssignerID == "" || tk.AssignerID == tk.AssigneeID {
		return
	}

	assigner, err := s.employeeRepo.GetByID(ctx, tk.AssignerID)
	if err != nil {
		slog.Warn("Cron: assigner not found for closed task", "task_id", tk.ID, "assigner_id", tk.AssignerID, "error", err)
		return
	}

	assigneeName := tk.AssigneeID
	if assignee.FullName != "" {
		assigneeName = assignee.FullName
	}
	s.send(tk, assigner, "Assigned task closed: deadline passed", "task_auto_closed_assigner.html", map[string]any{
		"AssignerName": assigner.FullName,
		"AssigneeName": assigneeName,
		"TaskTitle":    tk.Title,
		"Deadline":     tk.Deadline.Format("2006-01-02 15:04"),
	})
}

func (s *Service) send(tk task.Task, emp employee.Employee, subject, template string, data map[string]any) {
	if emp.Email == nil || *emp.Email == "" {
		slog.Warn("Cron: employee has no email address, skipping task closure notification",
			"task_id", tk.ID, "employee_id", emp.ID)
		return
	}

	if err := s.mail.Send(*emp.Email, subject, template, data); err != nil {
		slog.Error("Cron: failed to send task closure notification",
			"task_id", tk.ID, "employee_id", emp.ID, "error", err)
	}
}

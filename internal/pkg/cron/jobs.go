package cron

import (
	"github.com/kriyahr/workforce-backend-go/internal/service/compliance"
	taskService "github.com/kriyahr/workforce-backend-go/internal/service/task"
)

// ComplianceJobs wires the compliance evaluators and the task auto-closer to
// their triggers. Trigger times live here as data; the services themselves
// know nothing about the schedule.
type ComplianceJobs struct {
	complianceSvc *compliance.Service
	taskSvc       *taskService.Service
}

func NewComplianceJobs(complianceSvc *compliance.Service, taskSvc *taskService.Service) *ComplianceJobs {
	return &ComplianceJobs{
		complianceSvc: complianceSvc,
		taskSvc:       taskSvc,
	}
}

func (j *ComplianceJobs) RegisterJobs(scheduler *Scheduler) error {
	if err := scheduler.AddJob("check_underworked_hours", "02:00", true, j.complianceSvc.CheckUnderworkedHours); err != nil {
		return err
	}
	if err := scheduler.AddJob("check_missed_clock_out", "08:15", true, j.complianceSvc.CheckMissedClockOut); err != nil {
		return err
	}
	if err := scheduler.AddJob("check_early_clock_out", "08:20", true, j.complianceSvc.CheckEarlyClockOut); err != nil {
		return err
	}
	if err := scheduler.AddJob("check_late_clock_in", "08:25", true, j.complianceSvc.CheckLateClockIn); err != nil {
		return err
	}
	if err := scheduler.AddJob("check_unrecorded_absence", "08:30", true, j.complianceSvc.CheckUnrecordedAbsence); err != nil {
		return err
	}
	// Task deadlines carry full timestamps, so this one runs every day.
	if err := scheduler.AddJob("auto_close_overdue_tasks", "01:00", false, j.taskSvc.CloseOverdue); err != nil {
		return err
	}

	return nil
}

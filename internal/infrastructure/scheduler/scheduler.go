package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/talentfold/hr-portal/configs"
	"github.com/talentfold/hr-portal/internal/core/ports"
)

const jobTimeout = 10 * time.Minute

// Scheduler runs the recurring background jobs: HRIS directory sync,
// weekly timesheet reminders and the expired leave sweep.
type Scheduler struct {
	cron         *cron.Cron
	config       *configs.SchedulerConfig
	employeeSvc  ports.EmployeeService
	timesheetSvc ports.TimesheetService
	leaveSvc     ports.LeaveService
	logger       *logrus.Logger
}

func New(config *configs.SchedulerConfig, employeeSvc ports.EmployeeService, timesheetSvc ports.TimesheetService, leaveSvc ports.LeaveService, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:         cron.New(),
		config:       config,
		employeeSvc:  employeeSvc,
		timesheetSvc: timesheetSvc,
		leaveSvc:     leaveSvc,
		logger:       logger,
	}
}

// Start registers the configured jobs and starts the cron loop. It must be
// balanced by a call to Stop.
func (s *Scheduler) Start() error {
	jobs := []struct {
		name string
		spec string
		run  func(ctx context.Context) error
	}{
		{"directory_sync", s.config.DirectorySyncSpec, s.runDirectorySync},
		{"timesheet_reminders", s.config.TimesheetReminderSpec, s.runTimesheetReminders},
		{"leave_sweep", s.config.LeaveSweepSpec, s.runLeaveSweep},
	}

	for _, job := range jobs {
		job := job
		if _, err := s.cron.AddFunc(job.spec, func() { s.runJob(job.name, job.run) }); err != nil {
			return fmt.Errorf("failed to schedule %s with spec %q: %w", job.name, job.spec, err)
		}
	}

	s.cron.Start()
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"directory_sync":      s.config.DirectorySyncSpec,
			"timesheet_reminders": s.config.TimesheetReminderSpec,
			"leave_sweep":         s.config.LeaveSweepSpec,
		}).Info("Scheduler started")
	}
	return nil
}

// Stop halts the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("Scheduler stopped")
	}
}

func (s *Scheduler) runJob(name string, run func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	err := run(ctx)
	fields := logrus.Fields{"job": name, "duration": time.Since(start).String()}
	if s.logger == nil {
		return
	}
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Scheduled job failed")
		return
	}
	s.logger.WithFields(fields).Info("Scheduled job completed")
}

func (s *Scheduler) runDirectorySync(ctx context.Context) error {
	created, updated, err := s.employeeSvc.SyncDirectory(ctx)
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"created": created, "updated": updated}).Info("Directory sync job finished")
	}
	return nil
}

func (s *Scheduler) runTimesheetReminders(ctx context.Context) error {
	sent, err := s.timesheetSvc.SendWeeklyReminders(ctx)
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithField("reminders_sent", sent).Info("Timesheet reminder job finished")
	}
	return nil
}

func (s *Scheduler) runLeaveSweep(ctx context.Context) error {
	cancelled, err := s.leaveSvc.SweepExpired(ctx)
	if err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithField("cancelled", cancelled).Info("Leave sweep job finished")
	}
	return nil
}

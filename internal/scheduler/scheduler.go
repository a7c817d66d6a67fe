package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"drivehire-backend/internal/config"
	"drivehire-backend/internal/jobs"
	"drivehire-backend/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
	cfg  config.SchedulerConfig
}

func NewScheduler(jobRunner *jobs.JobRunner, cfg config.SchedulerConfig) *Scheduler {
	// Cron with UTC timezone and seconds precision.
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
		cfg:  cfg,
	}

	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	_, err := s.cron.AddFunc(s.cfg.ExpireStaleBookings, s.jobs.ExpireStaleBookings)
	if err != nil {
		logger.Error("Failed to register ExpireStaleBookings job", "error", err)
	}

	_, err = s.cron.AddFunc(s.cfg.SendPaymentReminders, s.jobs.SendPaymentReminders)
	if err != nil {
		logger.Error("Failed to register SendPaymentReminders job", "error", err)
	}

	logger.Info("All cron jobs registered successfully")
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// IsRunning returns true if any jobs are registered.
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}

package jobs

import (
	"time"

	"drivehire-backend/internal/logger"
	"drivehire-backend/internal/notify"
	"drivehire-backend/internal/repository"
	"drivehire-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs.
type JobRunner struct {
	bookingRepo repository.BookingRepository
	paymentRepo repository.PaymentRepository
	userRepo    repository.UserRepository
	notifier    notify.Notifier
	emailSvc    service.EmailService
	now         func() time.Time
}

func NewJobRunner(
	bookingRepo repository.BookingRepository,
	paymentRepo repository.PaymentRepository,
	userRepo repository.UserRepository,
	notifier notify.Notifier,
	emailSvc service.EmailService,
) *JobRunner {
	return &JobRunner{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		emailSvc:    emailSvc,
		now:         time.Now,
	}
}

// runWithRecovery wraps job execution with panic recovery so one bad
// job never takes the scheduler down.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAll runs every job once, for manual execution via the cronjob
// binary.
func (jr *JobRunner) RunAll() {
	jr.ExpireStaleBookings()
	jr.SendPaymentReminders()
}

package jobs

import (
	"context"
	"fmt"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/logger"
	"drivehire-backend/internal/notify"
	"drivehire-backend/internal/utils"
)

// reminderWindowDays is how far ahead the payment reminder job looks.
const reminderWindowDays = 2

// SendPaymentReminders nudges customers whose trip starts within the
// reminder window while money is still outstanding.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()
		now := jr.now().UTC()
		from := now.Format(utils.DateLayout)
		to := now.AddDate(0, 0, reminderWindowDays).Format(utils.DateLayout)

		underpaid, err := jr.bookingRepo.ListUpcomingUnderpaid(ctx, from, to)
		if err != nil {
			logger.Error("Failed to list underpaid bookings", "error", err)
			return
		}

		count := 0
		for _, booking := range underpaid {
			paid, err := jr.paymentRepo.SumVerified(ctx, booking.ID)
			if err != nil {
				logger.Error("Failed to sum verified payments", "booking_id", booking.ID, "error", err)
				continue
			}
			remaining := booking.TotalPrice - paid
			if remaining <= 0 {
				continue
			}

			jr.notifier.Notify(ctx, notify.Message{
				UserID:    booking.CustomerID,
				BookingID: &booking.ID,
				Title:     "Payment reminder",
				Body:      fmt.Sprintf("Your trip for booking %s starts on %s and %d is still outstanding", booking.Code, booking.StartDate, remaining),
				Category:  domain.NotificationCategoryReminder,
			})

			customer, err := jr.userRepo.GetByID(ctx, booking.CustomerID)
			if err != nil || customer.Email == "" {
				continue
			}
			if err := jr.emailSvc.SendPaymentReminder(ctx, customer.Email, customer.Name, booking.Code, booking.StartDate, remaining); err != nil {
				logger.Warn("Payment reminder email failed", "booking_id", booking.ID, "error", err)
			}
			count++
		}
		logger.Info("Sent payment reminders", "count", count)
	})
}

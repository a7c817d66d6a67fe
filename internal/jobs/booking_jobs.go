package jobs

import (
	"context"
	"errors"
	"fmt"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/logger"
	"drivehire-backend/internal/notify"
	"drivehire-backend/internal/utils"
)

// ExpireStaleBookings cancels pending bookings whose start date has
// already passed without the driver ever confirming.
func (jr *JobRunner) ExpireStaleBookings() {
	jr.runWithRecovery("ExpireStaleBookings", func() {
		ctx := context.Background()
		today := jr.now().UTC().Format(utils.DateLayout)

		stale, err := jr.bookingRepo.ListStalePending(ctx, today)
		if err != nil {
			logger.Error("Failed to list stale pending bookings", "error", err)
			return
		}

		count := 0
		for _, booking := range stale {
			updated, err := jr.bookingRepo.Transition(ctx, booking.ID, domain.BookingStatusCancelled, "Cancelled automatically: booking was never confirmed before its start date")
			if err != nil {
				// Another actor may have raced us to a terminal state.
				if errors.Is(err, domain.ErrInvalidTransition) {
					continue
				}
				logger.Error("Failed to expire stale booking", "booking_id", booking.ID, "error", err)
				continue
			}
			count++
			jr.notifier.Notify(ctx, notify.Message{
				UserID:    updated.CustomerID,
				BookingID: &updated.ID,
				Title:     "Booking expired",
				Body:      fmt.Sprintf("Booking %s was cancelled because the driver did not confirm it before the start date", updated.Code),
				Category:  domain.NotificationCategoryBooking,
			})
		}
		logger.Info("Expired stale bookings", "count", count)
	})
}

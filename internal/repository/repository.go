package repository

import (
	"context"

	"drivehire-backend/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	SetFCMToken(ctx context.Context, userID int64, token string) error
}

type DriverRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Driver, error)
	GetByUserID(ctx context.Context, userID int64) (*domain.Driver, error)
	ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Driver, int32, error)
	SetVerified(ctx context.Context, id int64, verified bool) error
	SetAccepting(ctx context.Context, id int64, accepting bool) error
}

type BookingRepository interface {
	// CreateWithAvailability performs the availability check and the
	// insert in one transaction: it locks the driver row, verifies the
	// driver is bookable, rejects overlapping non-terminal bookings, and
	// snapshots the per-day rate onto the booking. Returns
	// domain.ErrDriverUnavailable, domain.ErrScheduleConflict or
	// domain.ErrDuplicateCode.
	CreateWithAvailability(ctx context.Context, b *domain.Booking) error

	GetByID(ctx context.Context, id int64) (*domain.Booking, error)

	// Transition re-reads the booking under a row lock, re-validates the
	// requested status against the state machine and writes the new
	// status. A non-empty note is appended to the booking's free-text
	// notes. Returns domain.ErrInvalidTransition without mutating state
	// when the edge is illegal.
	Transition(ctx context.Context, id int64, requested domain.BookingStatus, note string) (*domain.Booking, error)

	ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListByDriver(ctx context.Context, driverID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error)

	// ListStalePending returns pending bookings whose start date is
	// before the given date (yyyy-mm-dd), for the expiry job.
	ListStalePending(ctx context.Context, before string) ([]domain.Booking, error)
	// ListUpcomingUnderpaid returns non-cancelled bookings starting in
	// [from, to] that are not fully paid, for payment reminders.
	ListUpcomingUnderpaid(ctx context.Context, from, to string) ([]domain.Booking, error)
}

type PaymentRepository interface {
	// Submit validates the minimum-amount rules against the verified sum
	// read under the booking's row lock, inserts the payment, and for
	// auto-verified cash payments recomputes the booking's derived
	// payment status, all in one transaction. Returns the refreshed
	// booking.
	Submit(ctx context.Context, p *domain.Payment) (*domain.Booking, error)

	// Decide settles a pending payment exactly once. On approval the
	// booking's derived payment status is recomputed from the verified
	// sum including this payment, in the same transaction. Returns
	// domain.ErrAlreadyDecided if the payment is not pending.
	Decide(ctx context.Context, paymentID, verifierID int64, approve bool, notes string) (*domain.Payment, *domain.Booking, error)

	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error)
	SumVerified(ctx context.Context, bookingID int64) (int64, error)
}

type ReviewRepository interface {
	// Create inserts the review and recomputes the driver's average
	// rating and review count in one transaction. A unique-constraint
	// violation on booking_id maps to domain.ErrAlreadyReviewed.
	Create(ctx context.Context, r *domain.Review) error

	ExistsForBooking(ctx context.Context, bookingID int64) (bool, error)
	ListByDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.Review, int32, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int64, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int64) error
}

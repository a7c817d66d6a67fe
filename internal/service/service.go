package service

import (
	"context"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/security"
)

// CreateBookingRequest carries the customer's booking input. Pricing
// fields are intentionally absent: the driver's current rate is
// snapshotted server side.
type CreateBookingRequest struct {
	DriverID       int64
	ServiceKind    domain.ServiceKind
	StartDate      string
	EndDate        string
	StartTime      string
	PickupLocation string
	Destination    string
	PassengerCount *int32
	CargoDetail    string
	Notes          string
}

// BookingDetail is a booking with its payment trail and, for ongoing
// trips, the driver's latest reported position.
type BookingDetail struct {
	Booking  *domain.Booking
	Driver   *domain.Driver
	Payments []domain.Payment
	Summary  *domain.PaymentSummary
	Tracking *domain.TrackingPoint
}

type BookingService interface {
	Create(ctx context.Context, actor *security.Principal, req CreateBookingRequest) (*domain.Booking, *domain.ContactSummary, error)
	Get(ctx context.Context, actor *security.Principal, id int64) (*BookingDetail, error)
	Transition(ctx context.Context, actor *security.Principal, id int64, target domain.BookingStatus, note string) (*domain.Booking, error)
	Cancel(ctx context.Context, actor *security.Principal, id int64, reason string) (*domain.Booking, error)
	ListMine(ctx context.Context, actor *security.Principal, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	ListForDriver(ctx context.Context, actor *security.Principal, status string, page, pageSize int32) ([]domain.Booking, int32, error)
}

// SubmitPaymentRequest carries one installment submission.
type SubmitPaymentRequest struct {
	Kind     domain.PaymentKind
	Method   domain.PaymentMethod
	Amount   int64
	ProofRef string
	Notes    string
}

type PaymentService interface {
	Submit(ctx context.Context, actor *security.Principal, bookingID int64, req SubmitPaymentRequest) (*domain.Payment, *domain.Booking, error)
	Verify(ctx context.Context, actor *security.Principal, paymentID int64, approve bool, note string) (*domain.Payment, error)
	History(ctx context.Context, actor *security.Principal, bookingID int64) ([]domain.Payment, *domain.PaymentSummary, error)
}

type ReviewService interface {
	Add(ctx context.Context, actor *security.Principal, bookingID int64, rating int32, comment string) (*domain.Review, error)
	ListForDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.Review, int32, error)
}

type DriverService interface {
	ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Driver, int32, error)
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	SetVerified(ctx context.Context, actor *security.Principal, driverID int64, verified bool) error
	SetAccepting(ctx context.Context, actor *security.Principal, accepting bool) error
}

type NotificationService interface {
	List(ctx context.Context, actor *security.Principal, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, actor *security.Principal, notificationID int64) error
}

type TrackingService interface {
	Record(ctx context.Context, actor *security.Principal, bookingID int64, latitude, longitude, heading float64) error
	Latest(ctx context.Context, actor *security.Principal, bookingID int64) (*domain.TrackingPoint, error)
}

type EmailService interface {
	SendBookingCreated(ctx context.Context, to, name, code string) error
	SendBookingConfirmed(ctx context.Context, to, name, code, startDate string) error
	SendBookingCancelled(ctx context.Context, to, name, code, reason string) error
	SendPaymentVerified(ctx context.Context, to, name, code string, amount int64) error
	SendPaymentRejected(ctx context.Context, to, name, code string, amount int64) error
	SendPaymentReminder(ctx context.Context, to, name, code, startDate string, remaining int64) error
}

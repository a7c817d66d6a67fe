package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/logger"
	"drivehire-backend/internal/notify"
	"drivehire-backend/internal/repository"
	"drivehire-backend/internal/security"
	"drivehire-backend/internal/utils"
)

// codeRetries bounds how many times booking creation retries on a
// duplicate booking code collision.
const codeRetries = 3

type TrackingStore interface {
	Latest(ctx context.Context, bookingID int64) (*domain.TrackingPoint, error)
}

type bookingService struct {
	bookingRepo repository.BookingRepository
	driverRepo  repository.DriverRepository
	userRepo    repository.UserRepository
	paymentRepo repository.PaymentRepository
	tracking    TrackingStore
	notifier    notify.Notifier
	emailSvc    EmailService
	now         func() time.Time
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	driverRepo repository.DriverRepository,
	userRepo repository.UserRepository,
	paymentRepo repository.PaymentRepository,
	tracking TrackingStore,
	notifier notify.Notifier,
	emailSvc EmailService,
) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		driverRepo:  driverRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		tracking:    tracking,
		notifier:    notifier,
		emailSvc:    emailSvc,
		now:         time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, actor *security.Principal, req CreateBookingRequest) (*domain.Booking, *domain.ContactSummary, error) {
	if !req.ServiceKind.Valid() {
		return nil, nil, &domain.ValidationError{Field: "service_kind", Msg: "unknown service kind"}
	}
	if req.PickupLocation == "" {
		return nil, nil, &domain.ValidationError{Field: "pickup_location", Msg: "pickup location is required"}
	}
	if req.ServiceKind == domain.ServiceKindGoodsDelivery && req.CargoDetail == "" {
		return nil, nil, &domain.ValidationError{Field: "cargo_detail", Msg: "cargo detail is required for goods delivery"}
	}
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, nil, &domain.ValidationError{Field: "start_date", Msg: err.Error()}
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return nil, nil, &domain.ValidationError{Field: "end_date", Msg: err.Error()}
	}
	if start.Before(utils.Today()) {
		return nil, nil, &domain.ValidationError{Field: "start_date", Msg: "start date must not be in the past"}
	}
	dayCount, err := utils.DayCount(start, end)
	if err != nil {
		return nil, nil, &domain.ValidationError{Field: "end_date", Msg: err.Error()}
	}

	// Fast-path check; the repository re-checks under the driver row lock.
	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		if errors.Is(err, domain.ErrDriverNotFound) {
			return nil, nil, domain.ErrDriverUnavailable
		}
		return nil, nil, err
	}
	if !driver.Bookable() {
		return nil, nil, domain.ErrDriverUnavailable
	}

	booking := &domain.Booking{
		CustomerID:     actor.UserID,
		DriverID:       req.DriverID,
		ServiceKind:    req.ServiceKind,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		StartTime:      req.StartTime,
		PickupLocation: req.PickupLocation,
		Destination:    req.Destination,
		PassengerCount: req.PassengerCount,
		CargoDetail:    req.CargoDetail,
		Notes:          req.Notes,
		DayCount:       dayCount,
	}

	// Booking codes carry 4 random digits; collisions within a month are
	// possible, so retry with a fresh code a bounded number of times.
	for attempt := 0; ; attempt++ {
		booking.Code = utils.GenerateBookingCode(s.now())
		err = s.bookingRepo.CreateWithAvailability(ctx, booking)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicateCode) && attempt < codeRetries {
			continue
		}
		return nil, nil, err
	}

	s.notifyBookingCreated(ctx, booking, driver)
	contact := driver.Contact()
	return booking, &contact, nil
}

func (s *bookingService) notifyBookingCreated(ctx context.Context, booking *domain.Booking, driver *domain.Driver) {
	s.notifier.Notify(ctx, notify.Message{
		UserID:    driver.UserID,
		BookingID: &booking.ID,
		Title:     "New booking request",
		Body:      fmt.Sprintf("You have a new %s request for %s (%s)", booking.ServiceKind, booking.StartDate, booking.Code),
		Category:  domain.NotificationCategoryBooking,
	})

	customer, err := s.userRepo.GetByID(ctx, booking.CustomerID)
	if err == nil && customer.Email != "" {
		if err := s.emailSvc.SendBookingCreated(ctx, customer.Email, customer.Name, booking.Code); err != nil {
			logger.Warn("booking created email failed", "booking_id", booking.ID, "error", err)
		}
	}
}

func (s *bookingService) Get(ctx context.Context, actor *security.Principal, id int64) (*BookingDetail, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	driver, err := s.driverRepo.GetByID(ctx, booking.DriverID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, booking, driver); err != nil {
		return nil, err
	}

	payments, err := s.paymentRepo.ListByBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	paid, err := s.paymentRepo.SumVerified(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &BookingDetail{
		Booking:  booking,
		Driver:   driver,
		Payments: payments,
		Summary: &domain.PaymentSummary{
			TotalPrice:    booking.TotalPrice,
			TotalPaid:     paid,
			Remaining:     booking.TotalPrice - paid,
			PaymentStatus: booking.PaymentStatus,
		},
	}
	if booking.Status == domain.BookingStatusOngoing && s.tracking != nil {
		point, err := s.tracking.Latest(ctx, id)
		if err != nil {
			logger.Warn("latest tracking point lookup failed", "booking_id", id, "error", err)
		} else {
			detail.Tracking = point
		}
	}
	return detail, nil
}

// authorize rejects access to bookings the actor is not a party of.
// Admins see everything.
func (s *bookingService) authorize(actor *security.Principal, booking *domain.Booking, driver *domain.Driver) error {
	if actor.IsAdmin() {
		return nil
	}
	if booking.CustomerID == actor.UserID {
		return nil
	}
	if driver != nil && driver.UserID == actor.UserID {
		return nil
	}
	return domain.ErrForbidden
}

func (s *bookingService) Transition(ctx context.Context, actor *security.Principal, id int64, target domain.BookingStatus, note string) (*domain.Booking, error) {
	if !target.Valid() {
		return nil, &domain.ValidationError{Field: "status", Msg: "unknown booking status"}
	}
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	driver, err := s.driverRepo.GetByID(ctx, booking.DriverID)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTransition(actor, booking, driver, target); err != nil {
		return nil, err
	}

	updated, err := s.bookingRepo.Transition(ctx, id, target, note)
	if err != nil {
		return nil, err
	}
	s.notifyTransition(ctx, actor, updated, driver, note)
	return updated, nil
}

// authorizeTransition enforces who may request which edge: admins any,
// the booking's driver any, the customer only cancellation while the
// booking is still pending or confirmed.
func (s *bookingService) authorizeTransition(actor *security.Principal, booking *domain.Booking, driver *domain.Driver, target domain.BookingStatus) error {
	if actor.IsAdmin() {
		return nil
	}
	if driver.UserID == actor.UserID {
		return nil
	}
	if booking.CustomerID == actor.UserID {
		if target != domain.BookingStatusCancelled {
			return domain.ErrForbidden
		}
		if booking.Status != domain.BookingStatusPending && booking.Status != domain.BookingStatusConfirmed {
			return domain.ErrNotCancellable
		}
		return nil
	}
	return domain.ErrForbidden
}

func (s *bookingService) notifyTransition(ctx context.Context, actor *security.Principal, booking *domain.Booking, driver *domain.Driver, note string) {
	var title, body string
	switch booking.Status {
	case domain.BookingStatusConfirmed:
		title = "Booking confirmed"
		body = fmt.Sprintf("Your booking %s has been confirmed by %s", booking.Code, driver.Name)
	case domain.BookingStatusOngoing:
		title = "Trip started"
		body = fmt.Sprintf("Your trip for booking %s is underway", booking.Code)
	case domain.BookingStatusCompleted:
		title = "Trip completed"
		body = fmt.Sprintf("Your trip for booking %s is complete. You can now leave a review.", booking.Code)
	case domain.BookingStatusCancelled:
		title = "Booking cancelled"
		body = fmt.Sprintf("Booking %s has been cancelled", booking.Code)
	default:
		return
	}

	// The counterparty gets notified, not the actor.
	recipients := []int64{}
	if actor.UserID != booking.CustomerID {
		recipients = append(recipients, booking.CustomerID)
	}
	if actor.UserID != driver.UserID {
		recipients = append(recipients, driver.UserID)
	}
	for _, userID := range recipients {
		s.notifier.Notify(ctx, notify.Message{
			UserID:    userID,
			BookingID: &booking.ID,
			Title:     title,
			Body:      body,
			Category:  domain.NotificationCategoryBooking,
		})
	}

	customer, err := s.userRepo.GetByID(ctx, booking.CustomerID)
	if err != nil || customer.Email == "" {
		return
	}
	switch booking.Status {
	case domain.BookingStatusConfirmed:
		err = s.emailSvc.SendBookingConfirmed(ctx, customer.Email, customer.Name, booking.Code, booking.StartDate)
	case domain.BookingStatusCancelled:
		err = s.emailSvc.SendBookingCancelled(ctx, customer.Email, customer.Name, booking.Code, note)
	default:
		return
	}
	if err != nil {
		logger.Warn("booking lifecycle email failed", "booking_id", booking.ID, "error", err)
	}
}

func (s *bookingService) Cancel(ctx context.Context, actor *security.Principal, id int64, reason string) (*domain.Booking, error) {
	booking, err := s.Transition(ctx, actor, id, domain.BookingStatusCancelled, reason)
	if errors.Is(err, domain.ErrInvalidTransition) {
		return nil, domain.ErrNotCancellable
	}
	return booking, err
}

func (s *bookingService) ListMine(ctx context.Context, actor *security.Principal, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if status != "" && !domain.BookingStatus(status).Valid() {
		return nil, 0, &domain.ValidationError{Field: "status", Msg: "unknown booking status"}
	}
	return s.bookingRepo.ListByCustomer(ctx, actor.UserID, status, page, pageSize)
}

func (s *bookingService) ListForDriver(ctx context.Context, actor *security.Principal, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if status != "" && !domain.BookingStatus(status).Valid() {
		return nil, 0, &domain.ValidationError{Field: "status", Msg: "unknown booking status"}
	}
	driver, err := s.driverRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, 0, err
	}
	return s.bookingRepo.ListByDriver(ctx, driver.ID, status, page, pageSize)
}

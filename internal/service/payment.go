package service

import (
	"context"
	"fmt"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/logger"
	"drivehire-backend/internal/notify"
	"drivehire-backend/internal/repository"
	"drivehire-backend/internal/security"
	"drivehire-backend/internal/storage"
)

type paymentService struct {
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	driverRepo  repository.DriverRepository
	userRepo    repository.UserRepository
	proofStore  storage.Store
	notifier    notify.Notifier
	emailSvc    EmailService
}

func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	driverRepo repository.DriverRepository,
	userRepo repository.UserRepository,
	proofStore storage.Store,
	notifier notify.Notifier,
	emailSvc EmailService,
) PaymentService {
	return &paymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		driverRepo:  driverRepo,
		userRepo:    userRepo,
		proofStore:  proofStore,
		notifier:    notifier,
		emailSvc:    emailSvc,
	}
}

func (s *paymentService) Submit(ctx context.Context, actor *security.Principal, bookingID int64, req SubmitPaymentRequest) (*domain.Payment, *domain.Booking, error) {
	if !req.Kind.Valid() {
		return nil, nil, &domain.ValidationError{Field: "kind", Msg: "unknown payment kind"}
	}
	if !req.Method.Valid() {
		return nil, nil, &domain.ValidationError{Field: "method", Msg: "unknown payment method"}
	}
	if req.Amount <= 0 {
		return nil, nil, &domain.ValidationError{Field: "amount", Msg: "amount must be positive"}
	}
	if req.Method.RequiresProof() && req.ProofRef == "" {
		return nil, nil, &domain.ValidationError{Field: "proof_ref", Msg: "proof of payment is required for this method"}
	}
	if req.ProofRef != "" && s.proofStore != nil {
		exists, _, err := s.proofStore.Exists(ctx, req.ProofRef)
		if err != nil {
			return nil, nil, err
		}
		if !exists {
			return nil, nil, &domain.ValidationError{Field: "proof_ref", Msg: "referenced proof file was never uploaded"}
		}
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if !actor.IsAdmin() && booking.CustomerID != actor.UserID {
		return nil, nil, domain.ErrForbidden
	}
	if booking.Status == domain.BookingStatusCancelled {
		return nil, nil, &domain.ValidationError{Field: "booking_id", Msg: "cancelled bookings do not accept payments"}
	}

	payment := &domain.Payment{
		BookingID: bookingID,
		Amount:    req.Amount,
		Kind:      req.Kind,
		Method:    req.Method,
		ProofRef:  req.ProofRef,
		Notes:     req.Notes,
	}
	updated, err := s.paymentRepo.Submit(ctx, payment)
	if err != nil {
		return nil, nil, err
	}

	s.notifyDriver(ctx, updated, notify.Message{
		BookingID: &updated.ID,
		Title:     "Payment submitted",
		Body:      fmt.Sprintf("A %s payment of %d was submitted for booking %s", payment.Kind, payment.Amount, updated.Code),
		Category:  domain.NotificationCategoryPayment,
	})
	return payment, updated, nil
}

func (s *paymentService) notifyDriver(ctx context.Context, booking *domain.Booking, msg notify.Message) {
	driver, err := s.driverRepo.GetByID(ctx, booking.DriverID)
	if err != nil {
		logger.Warn("driver lookup for payment notification failed", "driver_id", booking.DriverID, "error", err)
		return
	}
	msg.UserID = driver.UserID
	s.notifier.Notify(ctx, msg)
}

func (s *paymentService) Verify(ctx context.Context, actor *security.Principal, paymentID int64, approve bool, note string) (*domain.Payment, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	payment, booking, err := s.paymentRepo.Decide(ctx, paymentID, actor.UserID, approve, note)
	if err != nil {
		return nil, err
	}

	title := "Payment verified"
	body := fmt.Sprintf("Your payment of %d for booking %s was verified", payment.Amount, booking.Code)
	if !approve {
		title = "Payment rejected"
		body = fmt.Sprintf("Your payment of %d for booking %s was rejected. Please submit again.", payment.Amount, booking.Code)
	}
	s.notifier.Notify(ctx, notify.Message{
		UserID:    booking.CustomerID,
		BookingID: &booking.ID,
		Title:     title,
		Body:      body,
		Category:  domain.NotificationCategoryPayment,
	})

	customer, lookupErr := s.userRepo.GetByID(ctx, booking.CustomerID)
	if lookupErr == nil && customer.Email != "" {
		var mailErr error
		if approve {
			mailErr = s.emailSvc.SendPaymentVerified(ctx, customer.Email, customer.Name, booking.Code, payment.Amount)
		} else {
			mailErr = s.emailSvc.SendPaymentRejected(ctx, customer.Email, customer.Name, booking.Code, payment.Amount)
		}
		if mailErr != nil {
			logger.Warn("payment decision email failed", "payment_id", payment.ID, "error", mailErr)
		}
	}
	return payment, nil
}

func (s *paymentService) History(ctx context.Context, actor *security.Principal, bookingID int64) ([]domain.Payment, *domain.PaymentSummary, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	if !actor.IsAdmin() && booking.CustomerID != actor.UserID {
		driver, err := s.driverRepo.GetByID(ctx, booking.DriverID)
		if err != nil || driver.UserID != actor.UserID {
			return nil, nil, domain.ErrForbidden
		}
	}

	payments, err := s.paymentRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	paid, err := s.paymentRepo.SumVerified(ctx, bookingID)
	if err != nil {
		return nil, nil, err
	}
	summary := &domain.PaymentSummary{
		TotalPrice:    booking.TotalPrice,
		TotalPaid:     paid,
		Remaining:     booking.TotalPrice - paid,
		PaymentStatus: booking.PaymentStatus,
	}
	return payments, summary, nil
}

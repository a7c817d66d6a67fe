package service

import (
	"context"
	"fmt"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/notify"
	"drivehire-backend/internal/repository"
	"drivehire-backend/internal/security"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookingRepo repository.BookingRepository
	driverRepo  repository.DriverRepository
	notifier    notify.Notifier
}

func NewReviewService(
	reviewRepo repository.ReviewRepository,
	bookingRepo repository.BookingRepository,
	driverRepo repository.DriverRepository,
	notifier notify.Notifier,
) ReviewService {
	return &reviewService{
		reviewRepo:  reviewRepo,
		bookingRepo: bookingRepo,
		driverRepo:  driverRepo,
		notifier:    notifier,
	}
}

func (s *reviewService) Add(ctx context.Context, actor *security.Principal, bookingID int64, rating int32, comment string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, &domain.ValidationError{Field: "rating", Msg: "rating must be between 1 and 5"}
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.CustomerID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if booking.Status != domain.BookingStatusCompleted {
		return nil, domain.ErrBookingNotEligible
	}

	review := &domain.Review{
		BookingID:  bookingID,
		DriverID:   booking.DriverID,
		CustomerID: actor.UserID,
		Rating:     rating,
		Comment:    comment,
	}
	// The unique constraint on booking_id is authoritative; a racing
	// duplicate surfaces as ErrAlreadyReviewed from Create.
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	if driver, err := s.driverRepo.GetByID(ctx, booking.DriverID); err == nil {
		s.notifier.Notify(ctx, notify.Message{
			UserID:    driver.UserID,
			BookingID: &bookingID,
			Title:     "New review",
			Body:      fmt.Sprintf("You received a %d-star review for booking %s", rating, booking.Code),
			Category:  domain.NotificationCategoryReview,
		})
	}
	return review, nil
}

func (s *reviewService) ListForDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.Review, int32, error) {
	if _, err := s.driverRepo.GetByID(ctx, driverID); err != nil {
		return nil, 0, err
	}
	return s.reviewRepo.ListByDriver(ctx, driverID, page, pageSize)
}

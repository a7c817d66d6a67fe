package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/notify"
)

func newReviewFixture() (*MockReviewRepo, *MockBookingRepo, *MockDriverRepo, *notify.Recorder, ReviewService) {
	reviewRepo := new(MockReviewRepo)
	bookingRepo := new(MockBookingRepo)
	driverRepo := new(MockDriverRepo)
	recorder := &notify.Recorder{}
	svc := NewReviewService(reviewRepo, bookingRepo, driverRepo, recorder)
	return reviewRepo, bookingRepo, driverRepo, recorder, svc
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	completed := &domain.Booking{ID: 5, Code: "DH30060001", CustomerID: 42, DriverID: 7, Status: domain.BookingStatusCompleted}

	t.Run("Success notifies the driver", func(t *testing.T) {
		reviewRepo, bookingRepo, driverRepo, recorder, svc := newReviewFixture()
		bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(completed, nil)
		reviewRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
			return r.BookingID == 5 && r.DriverID == 7 && r.Rating == 5
		})).Return(nil)
		driverRepo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Driver{ID: 7, UserID: 70}, nil)

		review, err := svc.Add(ctx, customer(42), 5, 5, "great trip")
		assert.NoError(t, err)
		assert.Equal(t, int32(5), review.Rating)
		assert.Len(t, recorder.Messages, 1)
		assert.Equal(t, domain.NotificationCategoryReview, recorder.Messages[0].Category)
	})

	t.Run("Rating out of range", func(t *testing.T) {
		_, _, _, _, svc := newReviewFixture()
		_, err := svc.Add(ctx, customer(42), 5, 0, "")
		assert.True(t, domain.IsValidation(err))
		_, err = svc.Add(ctx, customer(42), 5, 6, "")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("Only completed bookings are reviewable", func(t *testing.T) {
		_, bookingRepo, _, _, svc := newReviewFixture()
		ongoing := *completed
		ongoing.Status = domain.BookingStatusOngoing
		bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(&ongoing, nil)

		_, err := svc.Add(ctx, customer(42), 5, 4, "")
		assert.ErrorIs(t, err, domain.ErrBookingNotEligible)
	})

	t.Run("Only the customer may review", func(t *testing.T) {
		_, bookingRepo, _, _, svc := newReviewFixture()
		bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(completed, nil)

		_, err := svc.Add(ctx, customer(999), 5, 4, "")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Duplicate review surfaces from the store", func(t *testing.T) {
		reviewRepo, bookingRepo, _, recorder, svc := newReviewFixture()
		bookingRepo.On("GetByID", mock.Anything, int64(5)).Return(completed, nil)
		reviewRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrAlreadyReviewed)

		_, err := svc.Add(ctx, customer(42), 5, 4, "")
		assert.ErrorIs(t, err, domain.ErrAlreadyReviewed)
		assert.Empty(t, recorder.Messages)
	})
}

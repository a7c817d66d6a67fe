package service

import (
	"context"
	"time"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/realtime"
	"drivehire-backend/internal/repository"
	"drivehire-backend/internal/security"
)

// TrackingRecorder is the write side of the tracking passthrough.
type TrackingRecorder interface {
	Record(ctx context.Context, point *domain.TrackingPoint) error
	Latest(ctx context.Context, bookingID int64) (*domain.TrackingPoint, error)
}

type trackingService struct {
	store       TrackingRecorder
	bookingRepo repository.BookingRepository
	driverRepo  repository.DriverRepository
	hub         *realtime.Hub
}

func NewTrackingService(
	store TrackingRecorder,
	bookingRepo repository.BookingRepository,
	driverRepo repository.DriverRepository,
	hub *realtime.Hub,
) TrackingService {
	return &trackingService{
		store:       store,
		bookingRepo: bookingRepo,
		driverRepo:  driverRepo,
		hub:         hub,
	}
}

func (s *trackingService) Record(ctx context.Context, actor *security.Principal, bookingID int64, latitude, longitude, heading float64) error {
	if latitude < -90 || latitude > 90 {
		return &domain.ValidationError{Field: "latitude", Msg: "latitude out of range"}
	}
	if longitude < -180 || longitude > 180 {
		return &domain.ValidationError{Field: "longitude", Msg: "longitude out of range"}
	}
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status != domain.BookingStatusOngoing {
		return &domain.ValidationError{Field: "booking_id", Msg: "tracking is only accepted for ongoing bookings"}
	}
	driver, err := s.driverRepo.GetByID(ctx, booking.DriverID)
	if err != nil {
		return err
	}
	if driver.UserID != actor.UserID {
		return domain.ErrForbidden
	}

	point := &domain.TrackingPoint{
		BookingID:  bookingID,
		Latitude:   latitude,
		Longitude:  longitude,
		Heading:    heading,
		RecordedAt: time.Now().UTC(),
	}
	if err := s.store.Record(ctx, point); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.Publish(realtime.Event{
			Channel:  realtime.BookingChannel(bookingID),
			Category: "tracking",
			Title:    "Position update",
			Data:     point,
		})
	}
	return nil
}

func (s *trackingService) Latest(ctx context.Context, actor *security.Principal, bookingID int64) (*domain.TrackingPoint, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && booking.CustomerID != actor.UserID {
		driver, err := s.driverRepo.GetByID(ctx, booking.DriverID)
		if err != nil || driver.UserID != actor.UserID {
			return nil, domain.ErrForbidden
		}
	}
	return s.store.Latest(ctx, bookingID)
}

package service

import (
	"context"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/notify"
	"drivehire-backend/internal/repository"
	"drivehire-backend/internal/security"
)

type driverService struct {
	driverRepo repository.DriverRepository
	notifier   notify.Notifier
}

func NewDriverService(driverRepo repository.DriverRepository, notifier notify.Notifier) DriverService {
	return &driverService{driverRepo: driverRepo, notifier: notifier}
}

func (s *driverService) ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Driver, int32, error) {
	return s.driverRepo.ListAvailable(ctx, page, pageSize)
}

func (s *driverService) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	return s.driverRepo.GetByID(ctx, id)
}

func (s *driverService) SetVerified(ctx context.Context, actor *security.Principal, driverID int64, verified bool) error {
	if !actor.IsAdmin() {
		return domain.ErrForbidden
	}
	driver, err := s.driverRepo.GetByID(ctx, driverID)
	if err != nil {
		return err
	}
	if err := s.driverRepo.SetVerified(ctx, driverID, verified); err != nil {
		return err
	}

	title := "Account verified"
	body := "Your driver account has been verified. You can now receive bookings."
	if !verified {
		title = "Verification revoked"
		body = "Your driver account verification has been revoked."
	}
	s.notifier.Notify(ctx, notify.Message{
		UserID:   driver.UserID,
		Title:    title,
		Body:     body,
		Category: domain.NotificationCategoryDriver,
	})
	return nil
}

func (s *driverService) SetAccepting(ctx context.Context, actor *security.Principal, accepting bool) error {
	driver, err := s.driverRepo.GetByUserID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	return s.driverRepo.SetAccepting(ctx, driver.ID, accepting)
}

package service

import (
	"context"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/repository"
	"drivehire-backend/internal/security"
)

type notificationService struct {
	noteRepo repository.NotificationRepository
}

func NewNotificationService(noteRepo repository.NotificationRepository) NotificationService {
	return &notificationService{noteRepo: noteRepo}
}

func (s *notificationService) List(ctx context.Context, actor *security.Principal, page, pageSize int32) ([]domain.Notification, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize
	return s.noteRepo.List(ctx, actor.UserID, pageSize, offset)
}

func (s *notificationService) MarkAsRead(ctx context.Context, actor *security.Principal, notificationID int64) error {
	return s.noteRepo.MarkAsRead(ctx, notificationID, actor.UserID)
}

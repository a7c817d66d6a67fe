package postgres

import (
	"database/sql"

	_ "github.com/lib/pq"

	"drivehire-backend/internal/repository"
)

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.DriverRepository
	repository.BookingRepository
	repository.PaymentRepository
	repository.ReviewRepository
	repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                     db,
		UserRepository:         NewUserRepository(db),
		DriverRepository:       NewDriverRepository(db),
		BookingRepository:      NewBookingRepository(db),
		PaymentRepository:      NewPaymentRepository(db),
		ReviewRepository:       NewReviewRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}

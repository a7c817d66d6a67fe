package postgres

import (
	"context"
	"database/sql"
	"time"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/repository"
)

type reviewRepository struct {
	db *sql.DB
}

func NewReviewRepository(db *sql.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

// Create inserts the review and recomputes the driver's published rating
// in the same transaction, so the rating is never observed stale relative
// to a just-added review. reviews.booking_id is unique; the constraint is
// what actually guarantees one review per booking.
func (r *reviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO reviews (booking_id, driver_id, customer_id, rating, comment, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		rv.BookingID, rv.DriverID, rv.CustomerID, rv.Rating, rv.Comment, now).Scan(&rv.ID)
	if err != nil {
		if isUniqueViolation(err, "reviews_booking_id_key") {
			return domain.ErrAlreadyReviewed
		}
		return err
	}
	rv.CreatedOn = now

	_, err = tx.ExecContext(ctx,
		`UPDATE drivers SET rating = (SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE driver_id = $1), review_count = (SELECT count(*) FROM reviews WHERE driver_id = $1), updated_on = $2 WHERE id = $1`,
		rv.DriverID, now)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *reviewRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM reviews WHERE booking_id = $1`, bookingID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *reviewRepository) ListByDriver(ctx context.Context, driverID int64, page, pageSize int32) ([]domain.Review, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM reviews WHERE driver_id = $1`, driverID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, booking_id, driver_id, customer_id, rating, COALESCE(comment, ''), created_on
		 FROM reviews WHERE driver_id = $1 ORDER BY created_on DESC LIMIT $2 OFFSET $3`,
		driverID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.DriverID, &rv.CustomerID, &rv.Rating, &rv.Comment, &rv.CreatedOn); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, count, rows.Err()
}

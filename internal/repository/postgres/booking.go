package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/repository"
)

const bookingColumns = `id, code, customer_id, driver_id, service_kind, start_date, end_date, start_time, pickup_location, destination, passenger_count, COALESCE(cargo_detail, ''), COALESCE(notes, ''), day_count, price_per_day, total_price, status, payment_status, created_on, updated_on`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func scanBooking(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Booking, error) {
	b := &domain.Booking{}
	var startDate, endDate time.Time
	var passengerCount sql.NullInt32
	err := row.Scan(&b.ID, &b.Code, &b.CustomerID, &b.DriverID, &b.ServiceKind,
		&startDate, &endDate, &b.StartTime, &b.PickupLocation, &b.Destination,
		&passengerCount, &b.CargoDetail, &b.Notes, &b.DayCount, &b.PricePerDay,
		&b.TotalPrice, &b.Status, &b.PaymentStatus, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, err
	}
	b.StartDate = startDate.Format("2006-01-02")
	b.EndDate = endDate.Format("2006-01-02")
	if passengerCount.Valid {
		v := passengerCount.Int32
		b.PassengerCount = &v
	}
	return b, nil
}

// CreateWithAvailability runs the availability check and the insert as one
// atomic unit. The driver row lock serializes concurrent creation attempts
// for the same driver, so two overlapping requests cannot both pass the
// conflict query.
func (r *bookingRepository) CreateWithAvailability(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var pricePerDay int64
	var isVerified, isAccepting bool
	err = tx.QueryRowContext(ctx,
		`SELECT price_per_day, is_verified, is_accepting FROM drivers WHERE id = $1 FOR UPDATE`,
		b.DriverID).Scan(&pricePerDay, &isVerified, &isAccepting)
	if err == sql.ErrNoRows {
		return domain.ErrDriverUnavailable
	}
	if err != nil {
		return err
	}
	if !isVerified || !isAccepting {
		return domain.ErrDriverUnavailable
	}

	// Closed-interval overlap: a booking ending on day D conflicts with
	// one starting on day D.
	var conflicts int
	err = tx.QueryRowContext(ctx,
		`SELECT count(*) FROM bookings WHERE driver_id = $1 AND status IN ('pending', 'confirmed', 'ongoing') AND start_date <= $3 AND end_date >= $2`,
		b.DriverID, b.StartDate, b.EndDate).Scan(&conflicts)
	if err != nil {
		return err
	}
	if conflicts > 0 {
		return domain.ErrScheduleConflict
	}

	b.PricePerDay = pricePerDay
	b.TotalPrice = int64(b.DayCount) * pricePerDay
	b.Status = domain.BookingStatusPending
	b.PaymentStatus = domain.PaymentStatusUnpaid

	now := time.Now()
	err = tx.QueryRowContext(ctx,
		`INSERT INTO bookings (code, customer_id, driver_id, service_kind, start_date, end_date, start_time, pickup_location, destination, passenger_count, cargo_detail, notes, day_count, price_per_day, total_price, status, payment_status, created_on, updated_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19) RETURNING id`,
		b.Code, b.CustomerID, b.DriverID, b.ServiceKind, b.StartDate, b.EndDate,
		b.StartTime, b.PickupLocation, b.Destination, nullableInt32(b.PassengerCount),
		b.CargoDetail, b.Notes, b.DayCount, b.PricePerDay, b.TotalPrice,
		b.Status, b.PaymentStatus, now, now).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err, "bookings_code_key") {
			return domain.ErrDuplicateCode
		}
		return err
	}
	b.CreatedOn = now
	b.UpdatedOn = now

	return tx.Commit()
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Transition re-reads the current status under a row lock before writing,
// so the second of two concurrent writers revalidates against the fresh
// status instead of a stale read.
func (r *bookingRepository) Transition(ctx context.Context, id int64, requested domain.BookingStatus, note string) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	if !b.Status.CanTransitionTo(requested) {
		return nil, domain.ErrInvalidTransition
	}

	if note != "" {
		if b.Notes != "" {
			b.Notes += "\n"
		}
		b.Notes += note
	}

	now := time.Now()
	_, err = tx.ExecContext(ctx,
		`UPDATE bookings SET status = $1, notes = $2, updated_on = $3 WHERE id = $4`,
		requested, b.Notes, now, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	b.Status = requested
	b.UpdatedOn = now
	return b, nil
}

func (r *bookingRepository) ListByCustomer(ctx context.Context, customerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "customer_id", customerID, status, page, pageSize)
}

func (r *bookingRepository) ListByDriver(ctx context.Context, driverID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	return r.list(ctx, "driver_id", driverID, status, page, pageSize)
}

func (r *bookingRepository) list(ctx context.Context, ownerColumn string, ownerID int64, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + ownerColumn + ` = $1`

	args := []interface{}{ownerID}
	argIdx := 2
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) ListStalePending(ctx context.Context, before string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status = 'pending' AND start_date < $1 ORDER BY start_date`
	return r.queryBookings(ctx, query, before)
}

func (r *bookingRepository) ListUpcomingUnderpaid(ctx context.Context, from, to string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE status IN ('pending', 'confirmed') AND payment_status != 'paid' AND start_date BETWEEN $1 AND $2 ORDER BY start_date`
	return r.queryBookings(ctx, query, from, to)
}

func (r *bookingRepository) queryBookings(ctx context.Context, query string, args ...interface{}) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func nullableInt32(v *int32) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

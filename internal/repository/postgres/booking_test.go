package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/repository/postgres"
)

var bookingCols = []string{
	"id", "code", "customer_id", "driver_id", "service_kind", "start_date",
	"end_date", "start_time", "pickup_location", "destination",
	"passenger_count", "cargo_detail", "notes", "day_count", "price_per_day",
	"total_price", "status", "payment_status", "created_on", "updated_on",
}

func bookingRow(id int64, status domain.BookingStatus, paymentStatus domain.PaymentStatus, totalPrice int64) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(bookingCols).
		AddRow(id, "DH30060001", int64(42), int64(7), "transport", now, now.Add(48*time.Hour),
			"08:00", "Airport", "City Center", nil, "", "", int32(3), int64(500000),
			totalPrice, string(status), string(paymentStatus), now, now)
}

func newBooking() *domain.Booking {
	return &domain.Booking{
		Code:           "DH30060001",
		CustomerID:     42,
		DriverID:       7,
		ServiceKind:    domain.ServiceKindTransport,
		StartDate:      "2030-06-10",
		EndDate:        "2030-06-12",
		StartTime:      "08:00",
		PickupLocation: "Airport",
		Destination:    "City Center",
		DayCount:       3,
	}
}

func TestBookingRepository_CreateWithAvailability(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success snapshots the driver rate", func(t *testing.T) {
		b := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT price_per_day, is_verified, is_accepting FROM drivers WHERE id = \\$1 FOR UPDATE").
			WithArgs(b.DriverID).
			WillReturnRows(sqlmock.NewRows([]string{"price_per_day", "is_verified", "is_accepting"}).AddRow(500000, true, true))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM bookings WHERE driver_id = \\$1").
			WithArgs(b.DriverID, b.StartDate, b.EndDate).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(100))
		mock.ExpectCommit()

		err := repo.CreateWithAvailability(ctx, b)
		assert.NoError(t, err)
		assert.Equal(t, int64(100), b.ID)
		assert.Equal(t, int64(500000), b.PricePerDay)
		assert.Equal(t, int64(1500000), b.TotalPrice)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
		assert.Equal(t, domain.PaymentStatusUnpaid, b.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Overlapping booking rolls back", func(t *testing.T) {
		b := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT price_per_day, is_verified, is_accepting FROM drivers").
			WithArgs(b.DriverID).
			WillReturnRows(sqlmock.NewRows([]string{"price_per_day", "is_verified", "is_accepting"}).AddRow(500000, true, true))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM bookings WHERE driver_id = \\$1").
			WithArgs(b.DriverID, b.StartDate, b.EndDate).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectRollback()

		err := repo.CreateWithAvailability(ctx, b)
		assert.ErrorIs(t, err, domain.ErrScheduleConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Driver not accepting", func(t *testing.T) {
		b := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT price_per_day, is_verified, is_accepting FROM drivers").
			WithArgs(b.DriverID).
			WillReturnRows(sqlmock.NewRows([]string{"price_per_day", "is_verified", "is_accepting"}).AddRow(500000, true, false))
		mock.ExpectRollback()

		err := repo.CreateWithAvailability(ctx, b)
		assert.ErrorIs(t, err, domain.ErrDriverUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate code maps to retryable error", func(t *testing.T) {
		b := newBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT price_per_day, is_verified, is_accepting FROM drivers").
			WithArgs(b.DriverID).
			WillReturnRows(sqlmock.NewRows([]string{"price_per_day", "is_verified", "is_accepting"}).AddRow(500000, true, true))
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM bookings WHERE driver_id = \\$1").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO bookings").
			WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_code_key"})
		mock.ExpectRollback()

		err := repo.CreateWithAvailability(ctx, b)
		assert.ErrorIs(t, err, domain.ErrDuplicateCode)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_Transition(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Legal edge writes new status", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(5)).
			WillReturnRows(bookingRow(5, domain.BookingStatusPending, domain.PaymentStatusUnpaid, 1500000))
		mock.ExpectExec("UPDATE bookings SET status = \\$1, notes = \\$2, updated_on = \\$3 WHERE id = \\$4").
			WithArgs(domain.BookingStatusConfirmed, "see you at 8", sqlmock.AnyArg(), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		b, err := repo.Transition(ctx, 5, domain.BookingStatusConfirmed, "see you at 8")
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusConfirmed, b.Status)
		assert.Equal(t, "see you at 8", b.Notes)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Illegal edge rolls back without writing", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(5)).
			WillReturnRows(bookingRow(5, domain.BookingStatusCompleted, domain.PaymentStatusPaid, 1500000))
		mock.ExpectRollback()

		_, err := repo.Transition(ctx, 5, domain.BookingStatusOngoing, "")
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing booking", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(bookingCols))
		mock.ExpectRollback()

		_, err := repo.Transition(ctx, 404, domain.BookingStatusConfirmed, "")
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

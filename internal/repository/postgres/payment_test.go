package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/repository/postgres"
)

var paymentCols = []string{
	"id", "booking_id", "amount", "kind", "method", "proof_ref", "status",
	"verified_by", "verified_on", "notes", "created_on",
}

func TestPaymentRepository_Submit(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	t.Run("Cash settlement closes the balance", func(t *testing.T) {
		// 1,000,000 total with a 300,000 deposit already verified: a
		// 700,000 cash settlement flips the booking to paid in the same
		// transaction.
		p := &domain.Payment{
			BookingID: 5,
			Amount:    700000,
			Kind:      domain.PaymentKindSettlement,
			Method:    domain.PaymentMethodCash,
		}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(5)).
			WillReturnRows(bookingRow(5, domain.BookingStatusConfirmed, domain.PaymentStatusDPPaid, 1000000))
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payments").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(300000))
		mock.ExpectQuery("INSERT INTO payments").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
		mock.ExpectExec("UPDATE bookings SET payment_status = \\$1").
			WithArgs(domain.PaymentStatusPaid, sqlmock.AnyArg(), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		booking, err := repo.Submit(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, int64(9), p.ID)
		assert.Equal(t, domain.PaymentVerified, p.Status)
		assert.NotNil(t, p.VerifiedOn)
		assert.Equal(t, domain.PaymentStatusPaid, booking.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Deposit below minimum rolls back", func(t *testing.T) {
		p := &domain.Payment{
			BookingID: 5,
			Amount:    100000,
			Kind:      domain.PaymentKindDeposit,
			Method:    domain.PaymentMethodCash,
		}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(5)).
			WillReturnRows(bookingRow(5, domain.BookingStatusConfirmed, domain.PaymentStatusUnpaid, 1000000))
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payments").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))
		mock.ExpectRollback()

		_, err := repo.Submit(ctx, p)
		assert.ErrorIs(t, err, domain.ErrInsufficientAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Settlement below outstanding rolls back", func(t *testing.T) {
		p := &domain.Payment{
			BookingID: 5,
			Amount:    500000,
			Kind:      domain.PaymentKindSettlement,
			Method:    domain.PaymentMethodTransfer,
			ProofRef:  "proofs/abc.png",
		}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(5)).
			WillReturnRows(bookingRow(5, domain.BookingStatusConfirmed, domain.PaymentStatusDPPaid, 1000000))
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payments").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(300000))
		mock.ExpectRollback()

		_, err := repo.Submit(ctx, p)
		assert.ErrorIs(t, err, domain.ErrInsufficientAmount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Transfer deposit stays pending", func(t *testing.T) {
		p := &domain.Payment{
			BookingID: 5,
			Amount:    300000,
			Kind:      domain.PaymentKindDeposit,
			Method:    domain.PaymentMethodTransfer,
			ProofRef:  "proofs/abc.png",
		}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(5)).
			WillReturnRows(bookingRow(5, domain.BookingStatusConfirmed, domain.PaymentStatusUnpaid, 1000000))
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payments").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(0))
		mock.ExpectQuery("INSERT INTO payments").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
		mock.ExpectCommit()

		booking, err := repo.Submit(ctx, p)
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentPending, p.Status)
		assert.Nil(t, p.VerifiedOn)
		// Pending money never advances the derived status.
		assert.Equal(t, domain.PaymentStatusUnpaid, booking.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing booking", func(t *testing.T) {
		p := &domain.Payment{BookingID: 404, Amount: 300000, Kind: domain.PaymentKindDeposit, Method: domain.PaymentMethodCash}

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(bookingCols))
		mock.ExpectRollback()

		_, err := repo.Submit(ctx, p)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_Decide(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)
	ctx := context.Background()

	pendingPayment := func() *sqlmock.Rows {
		return sqlmock.NewRows(paymentCols).
			AddRow(9, 5, 300000, "deposit", "transfer", "proofs/abc.png", "pending", nil, nil, "", time.Now())
	}

	t.Run("Approval recomputes booking status", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(9)).
			WillReturnRows(pendingPayment())
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(5)).
			WillReturnRows(bookingRow(5, domain.BookingStatusConfirmed, domain.PaymentStatusUnpaid, 1000000))
		mock.ExpectExec("UPDATE payments SET status = \\$1").
			WithArgs(domain.PaymentVerified, int64(1), sqlmock.AnyArg(), "looks good", int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payments").
			WithArgs(int64(5)).
			WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(300000))
		mock.ExpectExec("UPDATE bookings SET payment_status = \\$1").
			WithArgs(domain.PaymentStatusDPPaid, sqlmock.AnyArg(), int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		payment, booking, err := repo.Decide(ctx, 9, 1, true, "looks good")
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentVerified, payment.Status)
		assert.Equal(t, int64(1), *payment.VerifiedBy)
		assert.Equal(t, domain.PaymentStatusDPPaid, booking.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Rejection leaves booking status alone", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(9)).
			WillReturnRows(pendingPayment())
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(5)).
			WillReturnRows(bookingRow(5, domain.BookingStatusConfirmed, domain.PaymentStatusUnpaid, 1000000))
		mock.ExpectExec("UPDATE payments SET status = \\$1").
			WithArgs(domain.PaymentRejected, int64(1), sqlmock.AnyArg(), "blurry proof", int64(9)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		payment, booking, err := repo.Decide(ctx, 9, 1, false, "blurry proof")
		assert.NoError(t, err)
		assert.Equal(t, domain.PaymentRejected, payment.Status)
		assert.Equal(t, domain.PaymentStatusUnpaid, booking.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Second decision is rejected", func(t *testing.T) {
		decided := sqlmock.NewRows(paymentCols).
			AddRow(9, 5, 300000, "deposit", "transfer", "proofs/abc.png", "verified", 1, time.Now(), "", time.Now())

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT (.+) FROM payments WHERE id = \\$1 FOR UPDATE").
			WithArgs(int64(9)).
			WillReturnRows(decided)
		mock.ExpectRollback()

		_, _, err := repo.Decide(ctx, 9, 1, true, "")
		assert.ErrorIs(t, err, domain.ErrAlreadyDecided)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPaymentRepository_SumVerified(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewPaymentRepository(db)

	mock.ExpectQuery("SELECT COALESCE\\(SUM\\(amount\\), 0\\) FROM payments").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(300000))

	sum, err := repo.SumVerified(context.Background(), 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(300000), sum)
	assert.NoError(t, mock.ExpectationsWereMet())
}

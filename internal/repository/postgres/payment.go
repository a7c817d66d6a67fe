package postgres

import (
	"context"
	"database/sql"
	"time"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/repository"
)

const paymentColumns = `id, booking_id, amount, kind, method, COALESCE(proof_ref, ''), status, verified_by, verified_on, COALESCE(notes, ''), created_on`

type paymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

func scanPayment(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Payment, error) {
	p := &domain.Payment{}
	var verifiedBy sql.NullInt64
	var verifiedOn sql.NullTime
	err := row.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Kind, &p.Method,
		&p.ProofRef, &p.Status, &verifiedBy, &verifiedOn, &p.Notes, &p.CreatedOn)
	if err != nil {
		return nil, err
	}
	if verifiedBy.Valid {
		v := verifiedBy.Int64
		p.VerifiedBy = &v
	}
	if verifiedOn.Valid {
		t := verifiedOn.Time
		p.VerifiedOn = &t
	}
	return p, nil
}

// derivedStatus computes the booking's payment status from the verified
// sum. A kind that doesn't close the balance only advances the status for
// deposits; otherwise the previous status is kept.
func derivedStatus(previous domain.PaymentStatus, kind domain.PaymentKind, verifiedSum, totalPrice int64) domain.PaymentStatus {
	if verifiedSum >= totalPrice {
		return domain.PaymentStatusPaid
	}
	if kind == domain.PaymentKindDeposit {
		return domain.PaymentStatusDPPaid
	}
	return previous
}

// Submit inserts a payment attempt. The booking row lock makes the
// verified-sum read, the minimum-amount checks and the insert one atomic
// unit, so a cash payment is only marked paid when the fresh sum actually
// covers the total.
func (r *paymentRepository) Submit(ctx context.Context, p *domain.Payment) (*domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, query, p.BookingID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}

	var verifiedSum int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id = $1 AND status = 'verified'`,
		p.BookingID).Scan(&verifiedSum)
	if err != nil {
		return nil, err
	}

	outstanding := b.TotalPrice - verifiedSum
	switch p.Kind {
	case domain.PaymentKindDeposit:
		if p.Amount < domain.MinimumDeposit(b.TotalPrice) {
			return nil, domain.ErrInsufficientAmount
		}
	case domain.PaymentKindFull, domain.PaymentKindSettlement:
		if p.Amount < outstanding {
			return nil, domain.ErrInsufficientAmount
		}
	}

	now := time.Now()
	p.Status = domain.PaymentPending
	if p.Method == domain.PaymentMethodCash {
		// Cash is handed over in person and verifies at submission.
		p.Status = domain.PaymentVerified
		p.VerifiedOn = &now
	}

	err = tx.QueryRowContext(ctx,
		`INSERT INTO payments (booking_id, amount, kind, method, proof_ref, status, verified_on, notes, created_on)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		p.BookingID, p.Amount, p.Kind, p.Method, p.ProofRef, p.Status,
		nullableTime(p.VerifiedOn), p.Notes, now).Scan(&p.ID)
	if err != nil {
		return nil, err
	}
	p.CreatedOn = now

	if p.Status == domain.PaymentVerified {
		newStatus := derivedStatus(b.PaymentStatus, p.Kind, verifiedSum+p.Amount, b.TotalPrice)
		if newStatus != b.PaymentStatus {
			_, err = tx.ExecContext(ctx,
				`UPDATE bookings SET payment_status = $1, updated_on = $2 WHERE id = $3`,
				newStatus, now, b.ID)
			if err != nil {
				return nil, err
			}
			b.PaymentStatus = newStatus
			b.UpdatedOn = now
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return b, nil
}

// Decide settles a pending payment exactly once. The payment-status
// write and the booking derived-status recompute share one transaction.
func (r *paymentRepository) Decide(ctx context.Context, paymentID, verifierID int64, approve bool, notes string) (*domain.Payment, *domain.Booking, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1 FOR UPDATE`
	p, err := scanPayment(tx.QueryRowContext(ctx, query, paymentID))
	if err == sql.ErrNoRows {
		return nil, nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	// One-way transition from pending.
	if p.Status != domain.PaymentPending {
		return nil, nil, domain.ErrAlreadyDecided
	}

	bookingQuery := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	b, err := scanBooking(tx.QueryRowContext(ctx, bookingQuery, p.BookingID))
	if err != nil {
		return nil, nil, err
	}

	now := time.Now()
	newStatus := domain.PaymentRejected
	if approve {
		newStatus = domain.PaymentVerified
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE payments SET status = $1, verified_by = $2, verified_on = $3, notes = $4 WHERE id = $5`,
		newStatus, verifierID, now, notes, paymentID)
	if err != nil {
		return nil, nil, err
	}
	p.Status = newStatus
	p.VerifiedBy = &verifierID
	p.VerifiedOn = &now
	p.Notes = notes

	if approve {
		var verifiedSum int64
		err = tx.QueryRowContext(ctx,
			`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id = $1 AND status = 'verified'`,
			p.BookingID).Scan(&verifiedSum)
		if err != nil {
			return nil, nil, err
		}

		bookingStatus := derivedStatus(b.PaymentStatus, p.Kind, verifiedSum, b.TotalPrice)
		if bookingStatus != b.PaymentStatus {
			_, err = tx.ExecContext(ctx,
				`UPDATE bookings SET payment_status = $1, updated_on = $2 WHERE id = $3`,
				bookingStatus, now, b.ID)
			if err != nil {
				return nil, nil, err
			}
			b.PaymentStatus = bookingStatus
			b.UpdatedOn = now
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, err
	}
	return p, b, nil
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *paymentRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE booking_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

func (r *paymentRepository) SumVerified(ctx context.Context, bookingID int64) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE booking_id = $1 AND status = 'verified'`,
		bookingID).Scan(&sum)
	return sum, err
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

package postgres

import (
	"context"
	"database/sql"
	"time"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/repository"
)

const driverColumns = `id, user_id, name, phone, COALESCE(photo_url, ''), license_number, COALESCE(vehicle_model, ''), COALESCE(vehicle_plate, ''), price_per_day, is_verified, is_accepting, rating, review_count, created_on, updated_on`

type driverRepository struct {
	db *sql.DB
}

func NewDriverRepository(db *sql.DB) repository.DriverRepository {
	return &driverRepository{db: db}
}

func scanDriver(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Driver, error) {
	d := &domain.Driver{}
	err := row.Scan(&d.ID, &d.UserID, &d.Name, &d.Phone, &d.PhotoURL,
		&d.LicenseNumber, &d.VehicleModel, &d.VehiclePlate, &d.PricePerDay,
		&d.IsVerified, &d.IsAccepting, &d.Rating, &d.ReviewCount,
		&d.CreatedOn, &d.UpdatedOn)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *driverRepository) GetByID(ctx context.Context, id int64) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1`
	d, err := scanDriver(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, domain.ErrDriverNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *driverRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE user_id = $1`
	d, err := scanDriver(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, domain.ErrDriverNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *driverRepository) ListAvailable(ctx context.Context, page, pageSize int32) ([]domain.Driver, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM drivers WHERE is_verified = true AND is_accepting = true`).Scan(&count)
	if err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + driverColumns + ` FROM drivers WHERE is_verified = true AND is_accepting = true ORDER BY rating DESC, review_count DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var drivers []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, 0, err
		}
		drivers = append(drivers, *d)
	}
	return drivers, count, rows.Err()
}

func (r *driverRepository) SetVerified(ctx context.Context, id int64, verified bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE drivers SET is_verified = $1, updated_on = $2 WHERE id = $3`,
		verified, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrDriverNotFound
	}
	return nil
}

func (r *driverRepository) SetAccepting(ctx context.Context, id int64, accepting bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE drivers SET is_accepting = $1, updated_on = $2 WHERE id = $3`,
		accepting, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrDriverNotFound
	}
	return nil
}

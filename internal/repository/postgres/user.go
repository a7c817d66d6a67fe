package postgres

import (
	"context"
	"database/sql"

	"drivehire-backend/internal/domain"
	"drivehire-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, name, email, COALESCE(phone, ''), role, COALESCE(fcm_token, ''), created_on FROM users WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Role, &u.FCMToken, &u.CreatedOn)
	if err == sql.ErrNoRows {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) SetFCMToken(ctx context.Context, userID int64, token string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET fcm_token = $1 WHERE id = $2`, token, userID)
	return err
}

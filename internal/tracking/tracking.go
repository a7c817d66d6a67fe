// Package tracking keeps the latest reported position per ongoing
// booking in Redis. Points are ephemeral: only the most recent one is
// retained, and it expires on its own once the driver stops reporting.
package tracking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"drivehire-backend/internal/domain"
)

const pointTTL = 15 * time.Minute

// Store records and serves the latest tracking point per booking.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func pointKey(bookingID int64) string {
	return fmt.Sprintf("tracking:booking:%d", bookingID)
}

// Record stores the point as the booking's latest position.
func (s *Store) Record(ctx context.Context, point *domain.TrackingPoint) error {
	if point.RecordedAt.IsZero() {
		point.RecordedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(point)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, pointKey(point.BookingID), payload, pointTTL).Err()
}

// Latest returns the most recent point for a booking, or nil if none
// has been reported within the retention window.
func (s *Store) Latest(ctx context.Context, bookingID int64) (*domain.TrackingPoint, error) {
	payload, err := s.client.Get(ctx, pointKey(bookingID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var point domain.TrackingPoint
	if err := json.Unmarshal([]byte(payload), &point); err != nil {
		return nil, err
	}
	return &point, nil
}

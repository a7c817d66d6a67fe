package domain

import "time"

// Review is one-to-one with a completed booking. Uniqueness per booking
// is enforced by the store, not just the service pre-check.
type Review struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	DriverID   int64     `json:"driver_id"`
	CustomerID int64     `json:"customer_id"`
	Rating     int32     `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedOn  time.Time `json:"created_on"`
}

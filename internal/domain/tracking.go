package domain

import "time"

// TrackingPoint is the most recent position of a driver on an ongoing
// booking. The full trip log is an external append-only store; only the
// latest point passes through this service.
type TrackingPoint struct {
	BookingID  int64     `json:"booking_id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Heading    float64   `json:"heading,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

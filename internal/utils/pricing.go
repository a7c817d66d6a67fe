package utils

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for trip dates.
const DateLayout = "2006-01-02"

// ParseDate converts a yyyy-mm-dd formatted string into a time.Time at
// midnight UTC.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(DateLayout, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected yyyy-mm-dd", dateStr)
	}
	return t, nil
}

// DayCount returns the trip duration in days with both endpoints
// included: a same-day trip counts as 1 day.
func DayCount(startDate, endDate time.Time) (int32, error) {
	if endDate.Before(startDate) {
		return 0, fmt.Errorf("end date must be on or after start date")
	}
	days := int32(endDate.Sub(startDate).Hours()/24) + 1
	return days, nil
}

// TotalPrice computes the trip cost from the snapshotted per-day rate.
func TotalPrice(dayCount int32, pricePerDay int64) int64 {
	return int64(dayCount) * pricePerDay
}

// Today returns the current date truncated to midnight UTC, for
// "start date not in the past" checks.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

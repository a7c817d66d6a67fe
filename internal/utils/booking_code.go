package utils

import (
	"fmt"
	"math/rand"
	"time"
)

// BookingCodePrefix is the two-letter prefix of every booking code.
const BookingCodePrefix = "DH"

// GenerateBookingCode builds a human-readable booking code of the form
// <prefix><yy><mm><4 random digits>, e.g. DH26081234. Codes are not
// guaranteed unique here; the bookings table carries a unique constraint
// and callers retry on collision.
func GenerateBookingCode(now time.Time) string {
	return fmt.Sprintf("%s%02d%02d%04d", BookingCodePrefix, now.Year()%100, int(now.Month()), rand.Intn(10000))
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	t.Run("Valid date", func(t *testing.T) {
		date, err := ParseDate("2024-01-15")
		assert.NoError(t, err)
		assert.Equal(t, 2024, date.Year())
		assert.Equal(t, time.January, date.Month())
		assert.Equal(t, 15, date.Day())
		assert.Equal(t, time.UTC, date.Location())
	})

	t.Run("Invalid format", func(t *testing.T) {
		_, err := ParseDate("2024/01/15")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date")
	})

	t.Run("Invalid month", func(t *testing.T) {
		_, err := ParseDate("2024-13-15")
		assert.Error(t, err)
	})
}

func TestDayCount(t *testing.T) {
	parse := func(s string) time.Time {
		d, err := ParseDate(s)
		assert.NoError(t, err)
		return d
	}

	t.Run("Same day counts as one", func(t *testing.T) {
		days, err := DayCount(parse("2024-01-15"), parse("2024-01-15"))
		assert.NoError(t, err)
		assert.Equal(t, int32(1), days)
	})

	t.Run("Both endpoints included", func(t *testing.T) {
		// Jan 15 through Jan 17 is three chargeable days.
		days, err := DayCount(parse("2024-01-15"), parse("2024-01-17"))
		assert.NoError(t, err)
		assert.Equal(t, int32(3), days)
	})

	t.Run("Cross month boundary", func(t *testing.T) {
		days, err := DayCount(parse("2024-01-30"), parse("2024-02-02"))
		assert.NoError(t, err)
		assert.Equal(t, int32(4), days)
	})

	t.Run("Leap year February", func(t *testing.T) {
		days, err := DayCount(parse("2024-02-28"), parse("2024-03-01"))
		assert.NoError(t, err)
		assert.Equal(t, int32(3), days)
	})

	t.Run("Cross year boundary", func(t *testing.T) {
		days, err := DayCount(parse("2023-12-30"), parse("2024-01-02"))
		assert.NoError(t, err)
		assert.Equal(t, int32(4), days)
	})

	t.Run("End before start", func(t *testing.T) {
		_, err := DayCount(parse("2024-01-20"), parse("2024-01-15"))
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "end date must be on or after start date")
	})
}

func TestTotalPrice(t *testing.T) {
	t.Run("Multiplies day count by rate", func(t *testing.T) {
		assert.Equal(t, int64(1500000), TotalPrice(3, 500000))
	})

	t.Run("Single day", func(t *testing.T) {
		assert.Equal(t, int64(350000), TotalPrice(1, 350000))
	})
}

func TestGenerateBookingCode(t *testing.T) {
	t.Run("Format", func(t *testing.T) {
		now := time.Date(2024, time.March, 7, 10, 0, 0, 0, time.UTC)
		code := GenerateBookingCode(now)
		assert.Len(t, code, 10)
		assert.Equal(t, "DH2403", code[:6])
		assert.Regexp(t, `^DH\d{8}$`, code)
	})

	t.Run("Month is zero padded", func(t *testing.T) {
		now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
		code := GenerateBookingCode(now)
		assert.Equal(t, "DH2501", code[:6])
	})
}

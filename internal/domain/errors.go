package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDriverUnavailable = errors.New("driver is not available for booking")
	ErrScheduleConflict  = errors.New("driver already has a booking overlapping the requested dates")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrDriverNotFound    = errors.New("driver not found")
	ErrUserNotFound      = errors.New("user not found")

	ErrInvalidTransition = errors.New("status transition not allowed from current status")
	ErrNotCancellable    = errors.New("booking can no longer be cancelled")

	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("actor has no rights over this resource")

	ErrInsufficientAmount = errors.New("payment amount below required minimum")
	ErrAlreadyDecided     = errors.New("payment has already been verified or rejected")

	ErrAlreadyReviewed    = errors.New("booking already has a review")
	ErrBookingNotEligible = errors.New("booking is not eligible for review")

	// ErrDuplicateCode signals a booking-code collision; the caller
	// regenerates the code and retries.
	ErrDuplicateCode = errors.New("booking code already exists")
)

// ValidationError reports malformed or missing input with field-level
// detail.
type ValidationError struct {
	Field string
	Msg   string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

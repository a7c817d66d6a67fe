package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	all := []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusOngoing,
		BookingStatusCompleted,
		BookingStatusCancelled,
	}

	allowed := map[BookingStatus]map[BookingStatus]bool{
		BookingStatusPending:   {BookingStatusConfirmed: true, BookingStatusCancelled: true},
		BookingStatusConfirmed: {BookingStatusOngoing: true, BookingStatusCancelled: true},
		BookingStatusOngoing:   {BookingStatusCompleted: true, BookingStatusCancelled: true},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			got := from.CanTransitionTo(to)
			assert.Equal(t, want, got, "transition %s -> %s", from, to)
		}
	}
}

func TestBookingStatusNoSelfTransitions(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusOngoing,
		BookingStatusCompleted,
		BookingStatusCancelled,
	} {
		assert.False(t, status.CanTransitionTo(status), "self transition %s", status)
	}
}

func TestBookingStatusIsTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.False(t, BookingStatusOngoing.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
}

func TestBookingStatusValid(t *testing.T) {
	assert.True(t, BookingStatusPending.Valid())
	assert.False(t, BookingStatus("shipped").Valid())
	assert.False(t, BookingStatus("").Valid())
}

func TestMinimumDeposit(t *testing.T) {
	assert.Equal(t, int64(300000), MinimumDeposit(1000000))
	assert.Equal(t, int64(0), MinimumDeposit(0))
	// Integer division rounds down.
	assert.Equal(t, int64(30), MinimumDeposit(101))
}

func TestPaymentMethodRequiresProof(t *testing.T) {
	assert.True(t, PaymentMethodTransfer.RequiresProof())
	assert.True(t, PaymentMethodEWallet.RequiresProof())
	assert.False(t, PaymentMethodCash.RequiresProof())
}

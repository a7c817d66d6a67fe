package domain

import "time"

type PaymentKind string

const (
	PaymentKindDeposit    PaymentKind = "deposit"
	PaymentKindFull       PaymentKind = "full"
	PaymentKindSettlement PaymentKind = "settlement"
)

func (k PaymentKind) Valid() bool {
	switch k {
	case PaymentKindDeposit, PaymentKindFull, PaymentKindSettlement:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodEWallet  PaymentMethod = "e_wallet"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodTransfer, PaymentMethodCash, PaymentMethodEWallet:
		return true
	}
	return false
}

// RequiresProof reports whether a proof-of-transfer reference must
// accompany a payment made with this method. Cash is handed over in
// person and auto-verifies at submission.
func (m PaymentMethod) RequiresProof() bool {
	return m != PaymentMethodCash
}

type PaymentVerification string

const (
	PaymentPending  PaymentVerification = "pending"
	PaymentVerified PaymentVerification = "verified"
	PaymentRejected PaymentVerification = "rejected"
)

// DepositRate is the minimum deposit fraction of the booking total,
// expressed in percent.
const DepositRate = 30

// MinimumDeposit returns the smallest acceptable deposit amount for a
// booking of the given total price.
func MinimumDeposit(totalPrice int64) int64 {
	return totalPrice * DepositRate / 100
}

type Payment struct {
	ID         int64               `json:"id"`
	BookingID  int64               `json:"booking_id"`
	Amount     int64               `json:"amount"`
	Kind       PaymentKind         `json:"kind"`
	Method     PaymentMethod       `json:"method"`
	ProofRef   string              `json:"proof_ref,omitempty"`
	Status     PaymentVerification `json:"status"`
	VerifiedBy *int64              `json:"verified_by,omitempty"`
	VerifiedOn *time.Time          `json:"verified_on,omitempty"`
	Notes      string              `json:"notes,omitempty"`
	CreatedOn  time.Time           `json:"created_on"`
}

// PaymentSummary is the computed view returned with a booking's payment
// history. TotalPaid counts verified payments only.
type PaymentSummary struct {
	TotalPrice    int64         `json:"total_price"`
	TotalPaid     int64         `json:"total_paid"`
	Remaining     int64         `json:"remaining"`
	PaymentStatus PaymentStatus `json:"payment_status"`
}

package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusOngoing   BookingStatus = "ongoing"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// bookingTransitions is the full status state machine. Completed and
// cancelled are terminal and have no outgoing edges.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusOngoing, BookingStatusCancelled},
	BookingStatusOngoing:   {BookingStatusCompleted, BookingStatusCancelled},
}

// CanTransitionTo reports whether moving from s to next is a legal edge of
// the booking state machine.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status permits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusOngoing,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type ServiceKind string

const (
	ServiceKindTransport     ServiceKind = "transport"
	ServiceKindGoodsDelivery ServiceKind = "goods_delivery"
	ServiceKindTour          ServiceKind = "tour"
)

func (k ServiceKind) Valid() bool {
	switch k {
	case ServiceKindTransport, ServiceKindGoodsDelivery, ServiceKindTour:
		return true
	}
	return false
}

// PaymentStatus is the booking's derived payment state. It is recomputed
// from the sum of verified payments and never accepted from a client.
type PaymentStatus string

const (
	PaymentStatusUnpaid PaymentStatus = "unpaid"
	PaymentStatusDPPaid PaymentStatus = "dp_paid"
	PaymentStatusPaid   PaymentStatus = "paid"
)

type Booking struct {
	ID             int64         `json:"id"`
	Code           string        `json:"code"`
	CustomerID     int64         `json:"customer_id"`
	DriverID       int64         `json:"driver_id"`
	ServiceKind    ServiceKind   `json:"service_kind"`
	StartDate      string        `json:"start_date"`
	EndDate        string        `json:"end_date"`
	StartTime      string        `json:"start_time"`
	PickupLocation string        `json:"pickup_location"`
	Destination    string        `json:"destination"`
	PassengerCount *int32        `json:"passenger_count,omitempty"`
	CargoDetail    string        `json:"cargo_detail,omitempty"`
	Notes          string        `json:"notes,omitempty"`
	// Price snapshot fields, captured from the driver at booking creation
	// time. Later driver price changes never affect an existing booking.
	DayCount      int32         `json:"day_count"`
	PricePerDay   int64         `json:"price_per_day"`
	TotalPrice    int64         `json:"total_price"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedOn     time.Time     `json:"created_on"`
	UpdatedOn     time.Time     `json:"updated_on"`
}

package domain

import "time"

type NotificationCategory string

const (
	NotificationCategoryBooking  NotificationCategory = "booking"
	NotificationCategoryPayment  NotificationCategory = "payment"
	NotificationCategoryReview   NotificationCategory = "review"
	NotificationCategoryDriver   NotificationCategory = "driver"
	NotificationCategoryReminder NotificationCategory = "reminder"
)

type Notification struct {
	ID        int64                `json:"id"`
	UserID    int64                `json:"user_id"`
	BookingID *int64               `json:"booking_id,omitempty"`
	Title     string               `json:"title"`
	Message   string               `json:"message"`
	Category  NotificationCategory `json:"category"`
	IsRead    bool                 `json:"is_read"`
	CreatedOn time.Time            `json:"created_on"`
}

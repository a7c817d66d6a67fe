package domain

import "time"

// Roles carried in the access token issued by the identity provider.
const (
	RoleCustomer = "customer"
	RoleDriver   = "driver"
	RoleAdmin    = "admin"
)

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	FCMToken  string    `json:"-"`
	CreatedOn time.Time `json:"created_on"`
}

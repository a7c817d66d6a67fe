package domain

import "time"

type Driver struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	PhotoURL      string    `json:"photo_url,omitempty"`
	LicenseNumber string    `json:"license_number"`
	VehicleModel  string    `json:"vehicle_model,omitempty"`
	VehiclePlate  string    `json:"vehicle_plate,omitempty"`
	PricePerDay   int64     `json:"price_per_day"`
	IsVerified    bool      `json:"is_verified"`
	IsAccepting   bool      `json:"is_accepting"`
	Rating        float64   `json:"rating"`
	ReviewCount   int32     `json:"review_count"`
	CreatedOn     time.Time `json:"created_on"`
	UpdatedOn     time.Time `json:"updated_on"`
}

// Bookable reports whether the driver may receive new bookings at all.
// Schedule conflicts are a separate, per-date-range concern.
func (d *Driver) Bookable() bool {
	return d.IsVerified && d.IsAccepting
}

// ContactSummary is the slice of driver data returned to a customer on
// booking creation.
type ContactSummary struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	VehicleModel string `json:"vehicle_model,omitempty"`
	VehiclePlate string `json:"vehicle_plate,omitempty"`
}

func (d *Driver) Contact() ContactSummary {
	return ContactSummary{
		ID:           d.ID,
		Name:         d.Name,
		Phone:        d.Phone,
		VehicleModel: d.VehicleModel,
		VehiclePlate: d.VehiclePlate,
	}
}

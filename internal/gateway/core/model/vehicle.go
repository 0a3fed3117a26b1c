package model

import "time"

// Vehicle is the single vehicle record the system manages. There is no
// multi-vehicle fleet: the backend stores exactly one, upserted as a whole.
type Vehicle struct {
	Plate   string `json:"plate"`
	Chassis string `json:"chassis,omitempty"`
	Brand   string `json:"brand"`
	Model   string `json:"model"`

	YearManufacture *int `json:"year_manufacture,omitempty"`
	YearModel       *int `json:"year_model,omitempty"`

	// Status is one of: active, maintenance, inactive, sold, accident.
	Status string `json:"status,omitempty"`

	CurrentMileage         *int       `json:"current_mileage,omitempty"`
	LastMaintenanceMileage *int       `json:"last_maintenance_mileage,omitempty"`
	LastMaintenanceDate    *time.Time `json:"last_maintenance_date,omitempty"`
	NextMaintenanceKm      *int       `json:"next_maintenance_km,omitempty"`
	NextMaintenanceDate    *time.Time `json:"next_maintenance_date,omitempty"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	FuelType     string `json:"fuel_type,omitempty"`
	Transmission string `json:"transmission,omitempty"`
	Notes        string `json:"notes,omitempty"`

	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// MaintenanceRecord is one entry of the vehicle's maintenance history.
type MaintenanceRecord struct {
	ID          int       `json:"id"`
	Date        time.Time `json:"date"`
	Mileage     int       `json:"mileage"`
	Description string    `json:"description"`
	Cost        *float64  `json:"cost,omitempty"`
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Vehicle is owned by exactly one account. Deleting it cascades to
// its fuel records and oil changes.
type Vehicle struct {
	ID           uuid.UUID `json:"id" db:"id"`
	OwnerID      uuid.UUID `json:"owner_id" db:"owner_id"`
	Name         string    `json:"name" db:"name"`
	Brand        *string   `json:"brand,omitempty" db:"brand"`
	Model        *string   `json:"model,omitempty" db:"model"`
	Year         *int      `json:"year,omitempty" db:"year"`
	LicensePlate *string   `json:"license_plate,omitempty" db:"license_plate"`
	FuelType     string    `json:"fuel_type" db:"fuel_type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// VehicleInput is the client payload for creating or updating a vehicle.
type VehicleInput struct {
	Name         string  `json:"name"`
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
	LicensePlate *string `json:"license_plate"`
	FuelType     string  `json:"fuel_type"`
}

// Validate checks every field and reports all violations at once.
func (in *VehicleInput) Validate(now time.Time) error {
	v := &validator{}

	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		v.add("name", "name is required")
	} else if len(in.Name) > 100 {
		v.add("name", "name must be at most 100 characters")
	}

	if in.Brand != nil {
		*in.Brand = strings.TrimSpace(*in.Brand)
		if len(*in.Brand) > 50 {
			v.add("brand", "brand must be at most 50 characters")
		}
	}
	if in.Model != nil {
		*in.Model = strings.TrimSpace(*in.Model)
		if len(*in.Model) > 50 {
			v.add("model", "model must be at most 50 characters")
		}
	}
	if in.Year != nil {
		if *in.Year < 1900 {
			v.add("year", "year must be after 1900")
		} else if *in.Year > now.Year()+1 {
			v.add("year", "year is invalid")
		}
	}
	if in.LicensePlate != nil {
		*in.LicensePlate = strings.TrimSpace(*in.LicensePlate)
		if len(*in.LicensePlate) > 20 {
			v.add("license_plate", "license plate must be at most 20 characters")
		}
	}

	in.FuelType = strings.TrimSpace(in.FuelType)
	if in.FuelType == "" {
		v.add("fuel_type", "fuel type is required")
	} else if len(in.FuelType) > 50 {
		v.add("fuel_type", "fuel type must be at most 50 characters")
	}

	return v.err()
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// OilType is the kind of oil used on a change. Each type maps to a
// fixed service interval in kilometers.
type OilType string

const (
	OilTypeMineral       OilType = "mineral"
	OilTypeSemiSynthetic OilType = "semi_synthetic"
	OilTypeSynthetic     OilType = "synthetic"
)

// OilIntervalsKm is the fixed, non-configurable service interval table.
var OilIntervalsKm = map[OilType]float64{
	OilTypeMineral:       5000,
	OilTypeSemiSynthetic: 7500,
	OilTypeSynthetic:     10000,
}

// IsValid reports whether the oil type is one of the known kinds.
func (t OilType) IsValid() bool {
	_, ok := OilIntervalsKm[t]
	return ok
}

func (t OilType) String() string { return string(t) }

// OilChange is one oil service event for a vehicle.
type OilChange struct {
	ID            uuid.UUID `json:"id" db:"id"`
	OwnerID       uuid.UUID `json:"owner_id" db:"owner_id"`
	VehicleID     uuid.UUID `json:"vehicle_id" db:"vehicle_id"`
	Date          time.Time `json:"date" db:"date"`
	Odometer      float64   `json:"odometer" db:"odometer"`
	OilType       OilType   `json:"oil_type" db:"oil_type"`
	Establishment *string   `json:"establishment,omitempty" db:"establishment"`
	City          *string   `json:"city,omitempty" db:"city"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// NextDueOdometer is the odometer value at which the next service is due.
func (oc *OilChange) NextDueOdometer() float64 {
	return oc.Odometer + OilIntervalsKm[oc.OilType]
}

// OilChangeInput is the client payload for a new oil change.
type OilChangeInput struct {
	VehicleID     uuid.UUID `json:"vehicle_id"`
	Date          time.Time `json:"date"`
	Odometer      float64   `json:"odometer"`
	OilType       OilType   `json:"oil_type"`
	Establishment *string   `json:"establishment"`
	City          *string   `json:"city"`
	Notes         *string   `json:"notes"`
}

// Validate checks every field and reports all violations at once.
func (in *OilChangeInput) Validate() error {
	v := &validator{}

	if in.VehicleID == uuid.Nil {
		v.add("vehicle_id", "vehicle id is required")
	}
	if in.Date.IsZero() {
		v.add("date", "date is required")
	}
	if in.Odometer <= 0 {
		v.add("odometer", "odometer must be positive")
	} else if in.Odometer >= MaxOdometer {
		v.add("odometer", "odometer is too high")
	}
	if !in.OilType.IsValid() {
		v.add("oil_type", "oil type is invalid")
	}
	if in.Establishment != nil {
		*in.Establishment = strings.TrimSpace(*in.Establishment)
		if len(*in.Establishment) > 100 {
			v.add("establishment", "establishment must be at most 100 characters")
		}
	}
	if in.City != nil {
		*in.City = strings.TrimSpace(*in.City)
		if len(*in.City) > 100 {
			v.add("city", "city must be at most 100 characters")
		}
	}
	if in.Notes != nil {
		*in.Notes = strings.TrimSpace(*in.Notes)
		if len(*in.Notes) > 500 {
			v.add("notes", "notes must be at most 500 characters")
		}
	}

	return v.err()
}

// OilStatusLevel classifies how close a vehicle is to its next service.
type OilStatusLevel string

const (
	OilStatusOK      OilStatusLevel = "ok"
	OilStatusWarning OilStatusLevel = "warning"
	OilStatusOverdue OilStatusLevel = "overdue"
)

// WarningThresholdKm is the remaining distance at which status shifts
// from ok to warning.
const WarningThresholdKm = 500

// OilStatus is the due-state derived from the latest oil change and the
// vehicle's current odometer reading.
type OilStatus struct {
	Status      OilStatusLevel `json:"status"`
	NextKm      float64        `json:"next_km"`
	RemainingKm float64        `json:"remaining_km"`
}

// ComputeOilStatus classifies the vehicle against its latest oil change.
// The current odometer is supplied by the caller (the most recent fuel
// record reading, 0 when there is none); returns nil without a latest
// oil change to measure from.
func ComputeOilStatus(latest *OilChange, currentOdometer float64) *OilStatus {
	if latest == nil {
		return nil
	}

	nextKm := latest.NextDueOdometer()
	remaining := nextKm - currentOdometer

	status := OilStatusOK
	switch {
	case remaining <= 0:
		status = OilStatusOverdue
	case remaining <= WarningThresholdKm:
		status = OilStatusWarning
	}

	return &OilStatus{
		Status:      status,
		NextKm:      nextKm,
		RemainingKm: remaining,
	}
}

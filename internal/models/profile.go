package models

import (
	"time"

	"github.com/google/uuid"
)

// Free tier caps. Pro accounts are unlimited on every axis.
const (
	FreeVehicleLimit    = 1
	FreeFuelRecordLimit = 5 // fetch truncation, also feeds the stats
	FreeOilChangeLimit  = 1
	FreeMapUseLimit     = 2
)

// Profile carries the account's subscription tier and usage counters.
// It is loaded per request and passed explicitly to every operation.
type Profile struct {
	ID           uuid.UUID `json:"id" db:"id"`
	IsPro        bool      `json:"is_pro" db:"is_pro"`
	MapUsesCount int       `json:"map_uses_count" db:"map_uses_count"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FuelRecordFetchLimit returns how many fuel records a fetch may return,
// 0 meaning unlimited. Free accounts see only their 5 most recent records;
// statistics are computed over the same truncated set on purpose.
func (p *Profile) FuelRecordFetchLimit() int {
	if p.IsPro {
		return 0
	}
	return FreeFuelRecordLimit
}

// CanAddVehicle reports whether another vehicle may be registered given
// the current vehicle count.
func (p *Profile) CanAddVehicle(vehicleCount int64) bool {
	if p.IsPro {
		return true
	}
	return vehicleCount < FreeVehicleLimit
}

// CanAddOilChange reports whether another oil change may be recorded.
// The count is the account-wide total, regardless of vehicle.
func (p *Profile) CanAddOilChange(oilChangeCount int64) bool {
	if p.IsPro {
		return true
	}
	return oilChangeCount < FreeOilChangeLimit
}

// CanUseMap reports whether the station map may be opened once more.
func (p *Profile) CanUseMap() bool {
	if p.IsPro {
		return true
	}
	return p.MapUsesCount < FreeMapUseLimit
}

// RemainingMapUses returns how many map accesses are left on the free tier.
func (p *Profile) RemainingMapUses() int {
	if p.IsPro {
		return -1
	}
	if left := FreeMapUseLimit - p.MapUsesCount; left > 0 {
		return left
	}
	return 0
}

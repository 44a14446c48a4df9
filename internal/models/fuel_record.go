package models

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Upper bounds for fuel record inputs. Values at or above these are
// rejected as implausible.
const (
	MaxOdometer      = 10_000_000
	MaxPricePerLiter = 100
	MaxLiters        = 500
	MaxTotalCost     = 10_000
)

// FuelRecord is one refueling event. KmPerLiter is derived at insert
// time from the immediately preceding record of the same vehicle and
// stays nil when no positive distance exists to derive it from.
type FuelRecord struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	OwnerID       uuid.UUID  `json:"owner_id" db:"owner_id"`
	VehicleID     uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	StationID     *uuid.UUID `json:"station_id,omitempty" db:"station_id"`
	StationName   *string    `json:"station_name,omitempty" db:"station_name"`
	Odometer      float64    `json:"odometer" db:"odometer"`
	PricePerLiter float64    `json:"price_per_liter" db:"price_per_liter"`
	Liters        float64    `json:"liters" db:"liters"`
	TotalCost     float64    `json:"total_cost" db:"total_cost"`
	FuelType      string     `json:"fuel_type" db:"fuel_type"`
	KmPerLiter    *float64   `json:"km_per_liter,omitempty" db:"km_per_liter"`
	Notes         *string    `json:"notes,omitempty" db:"notes"`
	Date          time.Time  `json:"date" db:"date"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

// FuelRecordInput is the client payload for a new refueling event.
type FuelRecordInput struct {
	VehicleID     uuid.UUID  `json:"vehicle_id"`
	StationID     *uuid.UUID `json:"station_id"`
	StationName   *string    `json:"station_name"`
	Odometer      float64    `json:"odometer"`
	PricePerLiter float64    `json:"price_per_liter"`
	Liters        float64    `json:"liters"`
	TotalCost     float64    `json:"total_cost"`
	FuelType      string     `json:"fuel_type"`
	Notes         *string    `json:"notes"`
	Date          time.Time  `json:"date"`
}

// Validate checks every field and reports all violations at once.
// No write may happen when it fails.
func (in *FuelRecordInput) Validate() error {
	v := &validator{}

	if in.VehicleID == uuid.Nil {
		v.add("vehicle_id", "vehicle id is required")
	}
	if in.StationName != nil {
		*in.StationName = strings.TrimSpace(*in.StationName)
		if len(*in.StationName) > 100 {
			v.add("station_name", "station name must be at most 100 characters")
		}
	}
	if in.Odometer <= 0 {
		v.add("odometer", "odometer must be positive")
	} else if in.Odometer >= MaxOdometer {
		v.add("odometer", "odometer is too high")
	}
	if in.PricePerLiter <= 0 {
		v.add("price_per_liter", "price per liter must be positive")
	} else if in.PricePerLiter >= MaxPricePerLiter {
		v.add("price_per_liter", "price per liter is too high")
	}
	if in.Liters <= 0 {
		v.add("liters", "liters must be positive")
	} else if in.Liters >= MaxLiters {
		v.add("liters", "liters is too high")
	}
	if in.TotalCost <= 0 {
		v.add("total_cost", "total cost must be positive")
	} else if in.TotalCost >= MaxTotalCost {
		v.add("total_cost", "total cost is too high")
	}

	in.FuelType = strings.TrimSpace(in.FuelType)
	if in.FuelType == "" {
		v.add("fuel_type", "fuel type is required")
	} else if len(in.FuelType) > 50 {
		v.add("fuel_type", "fuel type must be at most 50 characters")
	}
	if in.Notes != nil {
		*in.Notes = strings.TrimSpace(*in.Notes)
		if len(*in.Notes) > 500 {
			v.add("notes", "notes must be at most 500 characters")
		}
	}
	if in.Date.IsZero() {
		v.add("date", "date is required")
	}

	return v.err()
}

// DeriveKmPerLiter computes distance-based efficiency against the prior
// odometer reading. Returns nil unless both the covered distance and the
// refueled volume are positive.
func DeriveKmPerLiter(priorOdometer, odometer, liters float64) *float64 {
	distance := odometer - priorOdometer
	if distance <= 0 || liters <= 0 {
		return nil
	}
	kml := Round2(distance / liters)
	return &kml
}

// FuelStats aggregates whatever record set it was computed from; a
// tier-truncated fetch truncates the stats with it.
type FuelStats struct {
	AvgKmPerLiter *float64    `json:"avg_km_per_liter"`
	TotalSpent    float64     `json:"total_spent"`
	TotalLiters   float64     `json:"total_liters"`
	RecordCount   int         `json:"record_count"`
	LastRecord    *FuelRecord `json:"last_record"`
}

// ComputeFuelStats aggregates a date-descending record set.
// Returns nil for an empty set.
func ComputeFuelStats(records []*FuelRecord) *FuelStats {
	if len(records) == 0 {
		return nil
	}

	var (
		kmlSum      float64
		kmlCount    int
		totalSpent  float64
		totalLiters float64
	)
	for _, r := range records {
		if r.KmPerLiter != nil {
			kmlSum += *r.KmPerLiter
			kmlCount++
		}
		totalSpent += r.TotalCost
		totalLiters += r.Liters
	}

	stats := &FuelStats{
		TotalSpent:  Round2(totalSpent),
		TotalLiters: Round2(totalLiters),
		RecordCount: len(records),
		LastRecord:  records[0],
	}
	if kmlCount > 0 {
		avg := Round2(kmlSum / float64(kmlCount))
		stats.AvgKmPerLiter = &avg
	}
	return stats
}

// Round2 rounds to two decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lucasmn/fueltrack/internal/models"
)

const fuelRecordColumns = "id, owner_id, vehicle_id, station_id, station_name, odometer, price_per_liter, liters, total_cost, fuel_type, km_per_liter, notes, date, created_at"

// FuelRecordRepository persists refueling events.
type FuelRecordRepository struct {
	db *DB
}

// NewFuelRecordRepository creates the fuel record repository.
func NewFuelRecordRepository(db *DB) *FuelRecordRepository {
	return &FuelRecordRepository{db: db}
}

// Create inserts a refueling event. The owner id on the model must come
// from the authenticated session, never from client input.
func (r *FuelRecordRepository) Create(ctx context.Context, rec *models.FuelRecord) error {
	query := `
		INSERT INTO fuel_records (owner_id, vehicle_id, station_id, station_name, odometer, price_per_liter, liters, total_cost, fuel_type, km_per_liter, notes, date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`
	now := time.Now()
	err := r.db.Pool.QueryRow(ctx, query,
		rec.OwnerID,
		rec.VehicleID,
		rec.StationID,
		rec.StationName,
		rec.Odometer,
		rec.PricePerLiter,
		rec.Liters,
		rec.TotalCost,
		rec.FuelType,
		rec.KmPerLiter,
		rec.Notes,
		rec.Date,
		now,
	).Scan(&rec.ID)

	if err != nil {
		return fmt.Errorf("insert fuel record: %w", err)
	}

	rec.CreatedAt = now
	return nil
}

// List returns the owner's records ordered by event date descending.
// vehicleID narrows to one vehicle when non-nil; limit 0 means no cap.
func (r *FuelRecordRepository) List(ctx context.Context, ownerID uuid.UUID, vehicleID *uuid.UUID, limit int) ([]*models.FuelRecord, error) {
	builder := psql.Select(fuelRecordColumns).
		From("fuel_records").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("date DESC", "created_at DESC")

	if vehicleID != nil {
		builder = builder.Where(squirrel.Eq{"vehicle_id": *vehicleID})
	}
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build fuel record query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list fuel records: %w", err)
	}
	defer rows.Close()

	var records []*models.FuelRecord
	for rows.Next() {
		rec := &models.FuelRecord{}
		if err := scanFuelRecord(rows, rec); err != nil {
			return nil, fmt.Errorf("scan fuel record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

// GetLatestForVehicle returns the vehicle's most recent record by event
// date, or nil when the vehicle has none.
func (r *FuelRecordRepository) GetLatestForVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) (*models.FuelRecord, error) {
	query := `
		SELECT ` + fuelRecordColumns + `
		FROM fuel_records
		WHERE owner_id = $1 AND vehicle_id = $2
		ORDER BY date DESC, created_at DESC
		LIMIT 1
	`
	rec := &models.FuelRecord{}
	err := scanFuelRecord(r.db.Pool.QueryRow(ctx, query, ownerID, vehicleID), rec)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest fuel record: %w", err)
	}
	return rec, nil
}

// Delete removes exactly one record scoped to its owner. Derived
// km_per_liter values of later records are left untouched.
func (r *FuelRecordRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM fuel_records WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete fuel record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

type pgxRow interface {
	Scan(dest ...any) error
}

func scanFuelRecord(row pgxRow, rec *models.FuelRecord) error {
	return row.Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.VehicleID,
		&rec.StationID,
		&rec.StationName,
		&rec.Odometer,
		&rec.PricePerLiter,
		&rec.Liters,
		&rec.TotalCost,
		&rec.FuelType,
		&rec.KmPerLiter,
		&rec.Notes,
		&rec.Date,
		&rec.CreatedAt,
	)
}

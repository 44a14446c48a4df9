package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lucasmn/fueltrack/internal/models"
)

const vehicleColumns = "id, owner_id, name, brand, model, year, license_plate, fuel_type, created_at, updated_at"

// VehicleRepository persists vehicles.
type VehicleRepository struct {
	db *DB
}

// NewVehicleRepository creates the vehicle repository.
func NewVehicleRepository(db *DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create inserts a vehicle.
func (r *VehicleRepository) Create(ctx context.Context, v *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (owner_id, name, brand, model, year, license_plate, fuel_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	now := time.Now()
	err := r.db.Pool.QueryRow(ctx, query,
		v.OwnerID,
		v.Name,
		v.Brand,
		v.Model,
		v.Year,
		v.LicensePlate,
		v.FuelType,
		now,
		now,
	).Scan(&v.ID)

	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}

	v.CreatedAt = now
	v.UpdatedAt = now
	return nil
}

// GetByID returns the vehicle scoped to its owner.
func (r *VehicleRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 AND owner_id = $2`
	v := &models.Vehicle{}
	err := scanVehicle(r.db.Pool.QueryRow(ctx, query, id, ownerID), v)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

// List returns the owner's vehicles ordered by creation time ascending,
// so the first registered vehicle stays the default selection.
func (r *VehicleRepository) List(ctx context.Context, ownerID uuid.UUID) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE owner_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		v := &models.Vehicle{}
		if err := scanVehicle(rows, v); err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}

	return vehicles, nil
}

// CountByOwner counts the owner's vehicles, for the free tier gate.
func (r *VehicleRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count vehicles: %w", err)
	}
	return count, nil
}

// Update rewrites the vehicle's editable fields.
func (r *VehicleRepository) Update(ctx context.Context, v *models.Vehicle) error {
	query := `
		UPDATE vehicles SET name = $1, brand = $2, model = $3, year = $4, license_plate = $5, fuel_type = $6, updated_at = $7
		WHERE id = $8 AND owner_id = $9
	`
	v.UpdatedAt = time.Now()
	tag, err := r.db.Pool.Exec(ctx, query,
		v.Name,
		v.Brand,
		v.Model,
		v.Year,
		v.LicensePlate,
		v.FuelType,
		v.UpdatedAt,
		v.ID,
		v.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes the vehicle; fuel records and oil changes cascade.
func (r *VehicleRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanVehicle(row pgxRow, v *models.Vehicle) error {
	return row.Scan(
		&v.ID,
		&v.OwnerID,
		&v.Name,
		&v.Brand,
		&v.Model,
		&v.Year,
		&v.LicensePlate,
		&v.FuelType,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
}

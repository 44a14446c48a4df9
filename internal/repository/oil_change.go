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

const oilChangeColumns = "id, owner_id, vehicle_id, date, odometer, oil_type, establishment, city, notes, created_at, updated_at"

// OilChangeRepository persists oil service events.
type OilChangeRepository struct {
	db *DB
}

// NewOilChangeRepository creates the oil change repository.
func NewOilChangeRepository(db *DB) *OilChangeRepository {
	return &OilChangeRepository{db: db}
}

// Create inserts an oil change.
func (r *OilChangeRepository) Create(ctx context.Context, oc *models.OilChange) error {
	query := `
		INSERT INTO oil_changes (owner_id, vehicle_id, date, odometer, oil_type, establishment, city, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	now := time.Now()
	err := r.db.Pool.QueryRow(ctx, query,
		oc.OwnerID,
		oc.VehicleID,
		oc.Date,
		oc.Odometer,
		oc.OilType,
		oc.Establishment,
		oc.City,
		oc.Notes,
		now,
		now,
	).Scan(&oc.ID)

	if err != nil {
		return fmt.Errorf("insert oil change: %w", err)
	}

	oc.CreatedAt = now
	oc.UpdatedAt = now
	return nil
}

// List returns the owner's oil changes ordered by event date descending.
// Oil change history is never tier-truncated.
func (r *OilChangeRepository) List(ctx context.Context, ownerID uuid.UUID, vehicleID *uuid.UUID) ([]*models.OilChange, error) {
	builder := psql.Select(oilChangeColumns).
		From("oil_changes").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("date DESC", "created_at DESC")

	if vehicleID != nil {
		builder = builder.Where(squirrel.Eq{"vehicle_id": *vehicleID})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build oil change query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list oil changes: %w", err)
	}
	defer rows.Close()

	var changes []*models.OilChange
	for rows.Next() {
		oc := &models.OilChange{}
		if err := scanOilChange(rows, oc); err != nil {
			return nil, fmt.Errorf("scan oil change: %w", err)
		}
		changes = append(changes, oc)
	}

	return changes, nil
}

// GetLatestForVehicle returns the vehicle's most recent oil change by
// event date, or nil when the vehicle has none.
func (r *OilChangeRepository) GetLatestForVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) (*models.OilChange, error) {
	query := `
		SELECT ` + oilChangeColumns + `
		FROM oil_changes
		WHERE owner_id = $1 AND vehicle_id = $2
		ORDER BY date DESC, created_at DESC
		LIMIT 1
	`
	oc := &models.OilChange{}
	err := scanOilChange(r.db.Pool.QueryRow(ctx, query, ownerID, vehicleID), oc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get latest oil change: %w", err)
	}
	return oc, nil
}

// CountByOwner counts all of the owner's oil changes across vehicles.
// The free tier gate is evaluated against this untruncated total.
func (r *OilChangeRepository) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM oil_changes WHERE owner_id = $1`, ownerID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count oil changes: %w", err)
	}
	return count, nil
}

// Delete removes exactly one oil change scoped to its owner.
func (r *OilChangeRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM oil_changes WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete oil change: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanOilChange(row pgxRow, oc *models.OilChange) error {
	return row.Scan(
		&oc.ID,
		&oc.OwnerID,
		&oc.VehicleID,
		&oc.Date,
		&oc.Odometer,
		&oc.OilType,
		&oc.Establishment,
		&oc.City,
		&oc.Notes,
		&oc.CreatedAt,
		&oc.UpdatedAt,
	)
}

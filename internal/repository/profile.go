package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lucasmn/fueltrack/internal/models"
)

// ProfileRepository persists account tier state.
type ProfileRepository struct {
	db *DB
}

// NewProfileRepository creates the profile repository.
func NewProfileRepository(db *DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetOrCreate returns the account's profile, creating the default free
// tier row on first touch.
func (r *ProfileRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	query := `
		INSERT INTO profiles (id) VALUES ($1)
		ON CONFLICT (id) DO UPDATE SET id = EXCLUDED.id
		RETURNING id, is_pro, map_uses_count, created_at, updated_at
	`
	p := &models.Profile{}
	err := r.db.Pool.QueryRow(ctx, query, userID).Scan(
		&p.ID,
		&p.IsPro,
		&p.MapUsesCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get or create profile: %w", err)
	}
	return p, nil
}

// SetPro flips the subscription flag.
func (r *ProfileRepository) SetPro(ctx context.Context, userID uuid.UUID, isPro bool) error {
	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE profiles SET is_pro = $1, updated_at = NOW() WHERE id = $2`, isPro, userID)
	if err != nil {
		return fmt.Errorf("set pro: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// ConsumeMapUse increments the map usage counter while the free cap has
// not been reached, atomically. Returns the remaining uses and whether
// a use was consumed.
func (r *ProfileRepository) ConsumeMapUse(ctx context.Context, userID uuid.UUID) (remaining int, ok bool, err error) {
	query := `
		UPDATE profiles SET map_uses_count = map_uses_count + 1, updated_at = NOW()
		WHERE id = $1 AND map_uses_count < $2
		RETURNING $2 - map_uses_count
	`
	err = r.db.Pool.QueryRow(ctx, query, userID, models.FreeMapUseLimit).Scan(&remaining)
	if errors.Is(err, pgx.ErrNoRows) {
		// No row matched: the cap is exhausted (or the profile is missing).
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("consume map use: %w", err)
	}
	return remaining, true, nil
}

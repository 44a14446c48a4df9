package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmn/fueltrack/internal/auth"
	"github.com/lucasmn/fueltrack/internal/models"
)

// VehicleStore is the persistence collaborator for vehicles.
type VehicleStore interface {
	Create(ctx context.Context, v *models.Vehicle) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*models.Vehicle, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]*models.Vehicle, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Update(ctx context.Context, v *models.Vehicle) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// VehicleService manages the account's vehicles.
type VehicleService struct {
	logger *zap.Logger
	store  VehicleStore
	hub    Broadcaster
}

// NewVehicleService creates the vehicle service.
func NewVehicleService(logger *zap.Logger, store VehicleStore, hub Broadcaster) *VehicleService {
	return &VehicleService{logger: logger, store: store, hub: hub}
}

// List returns the owner's vehicles, oldest first.
func (s *VehicleService) List(ctx context.Context, sess *auth.Session) ([]*models.Vehicle, error) {
	return s.store.List(ctx, sess.UserID)
}

// Add registers a vehicle. Free tier accounts are capped at one.
func (s *VehicleService) Add(ctx context.Context, sess *auth.Session, input *models.VehicleInput) (*models.Vehicle, error) {
	if !sess.IsPro() {
		count, err := s.store.CountByOwner(ctx, sess.UserID)
		if err != nil {
			return nil, err
		}
		if !sess.Profile.CanAddVehicle(count) {
			return nil, models.ErrTierLimit
		}
	}

	if err := input.Validate(time.Now()); err != nil {
		return nil, err
	}

	v := &models.Vehicle{
		OwnerID:      sess.UserID,
		Name:         input.Name,
		Brand:        input.Brand,
		Model:        input.Model,
		Year:         input.Year,
		LicensePlate: input.LicensePlate,
		FuelType:     input.FuelType,
	}
	if err := s.store.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("Vehicle added", zap.String("vehicle_id", v.ID.String()), zap.String("name", v.Name))
	s.hub.BroadcastToUser(sess.UserID, EventVehicleChanged, v)

	return v, nil
}

// Update rewrites the vehicle's editable fields.
func (s *VehicleService) Update(ctx context.Context, sess *auth.Session, id uuid.UUID, input *models.VehicleInput) (*models.Vehicle, error) {
	if err := input.Validate(time.Now()); err != nil {
		return nil, err
	}

	v, err := s.store.GetByID(ctx, sess.UserID, id)
	if err != nil {
		return nil, err
	}

	v.Name = input.Name
	v.Brand = input.Brand
	v.Model = input.Model
	v.Year = input.Year
	v.LicensePlate = input.LicensePlate
	v.FuelType = input.FuelType

	if err := s.store.Update(ctx, v); err != nil {
		return nil, err
	}

	s.hub.BroadcastToUser(sess.UserID, EventVehicleChanged, v)
	return v, nil
}

// Delete removes the vehicle; its fuel records and oil changes cascade
// at the store level.
func (s *VehicleService) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	if err := s.store.Delete(ctx, sess.UserID, id); err != nil {
		return err
	}
	s.hub.BroadcastToUser(sess.UserID, EventVehicleChanged, id)
	return nil
}

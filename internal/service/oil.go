package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmn/fueltrack/internal/auth"
	"github.com/lucasmn/fueltrack/internal/models"
)

// OilChangeStore is the persistence collaborator for oil service events.
type OilChangeStore interface {
	Create(ctx context.Context, oc *models.OilChange) error
	List(ctx context.Context, ownerID uuid.UUID, vehicleID *uuid.UUID) ([]*models.OilChange, error)
	GetLatestForVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) (*models.OilChange, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// OilService tracks oil change history and derives the next-due status
// from the fixed per-oil-type interval table.
type OilService struct {
	logger *zap.Logger
	store  OilChangeStore
	hub    Broadcaster
}

// NewOilService creates the oil service.
func NewOilService(logger *zap.Logger, store OilChangeStore, hub Broadcaster) *OilService {
	return &OilService{logger: logger, store: store, hub: hub}
}

// List returns the owner's oil changes, event date descending. Oil
// change history is never truncated by tier.
func (s *OilService) List(ctx context.Context, sess *auth.Session, vehicleID *uuid.UUID) ([]*models.OilChange, error) {
	return s.store.List(ctx, sess.UserID, vehicleID)
}

// CanAdd reports whether the account may record another oil change.
// Free tier accounts get a single record, counted account-wide over the
// untruncated history regardless of vehicle.
func (s *OilService) CanAdd(ctx context.Context, sess *auth.Session) (bool, error) {
	if sess.IsPro() {
		return true, nil
	}
	count, err := s.store.CountByOwner(ctx, sess.UserID)
	if err != nil {
		return false, err
	}
	return sess.Profile.CanAddOilChange(count), nil
}

// Add records an oil change after the tier gate and validation pass.
func (s *OilService) Add(ctx context.Context, sess *auth.Session, input *models.OilChangeInput) (*models.OilChange, error) {
	ok, err := s.CanAdd(ctx, sess)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, models.ErrTierLimit
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	oc := &models.OilChange{
		OwnerID:       sess.UserID,
		VehicleID:     input.VehicleID,
		Date:          input.Date,
		Odometer:      input.Odometer,
		OilType:       input.OilType,
		Establishment: input.Establishment,
		City:          input.City,
		Notes:         input.Notes,
	}
	if err := s.store.Create(ctx, oc); err != nil {
		return nil, err
	}

	s.logger.Info("Oil change added",
		zap.String("vehicle_id", oc.VehicleID.String()),
		zap.String("oil_type", oc.OilType.String()))
	s.hub.BroadcastToUser(sess.UserID, EventOilChangeAdded, oc)

	return oc, nil
}

// Delete removes exactly one oil change.
func (s *OilService) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	if err := s.store.Delete(ctx, sess.UserID, id); err != nil {
		return err
	}
	s.hub.BroadcastToUser(sess.UserID, EventOilChangeDeleted, id)
	return nil
}

// Status classifies the vehicle against its latest oil change. The
// current odometer is supplied by the caller, normally the most recent
// fuel record reading (0 when the vehicle has none); this service does
// not cross-reference fuel records itself. Returns nil when the vehicle
// has no oil change history.
func (s *OilService) Status(ctx context.Context, sess *auth.Session, vehicleID uuid.UUID, currentOdometer float64) (*models.OilStatus, error) {
	latest, err := s.store.GetLatestForVehicle(ctx, sess.UserID, vehicleID)
	if err != nil {
		return nil, err
	}
	return models.ComputeOilStatus(latest, currentOdometer), nil
}

package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmn/fueltrack/internal/auth"
	"github.com/lucasmn/fueltrack/internal/models"
)

// FuelRecordStore is the persistence collaborator for refueling events.
type FuelRecordStore interface {
	Create(ctx context.Context, rec *models.FuelRecord) error
	List(ctx context.Context, ownerID uuid.UUID, vehicleID *uuid.UUID, limit int) ([]*models.FuelRecord, error)
	GetLatestForVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) (*models.FuelRecord, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// Broadcaster pushes sync events to the account's other connected devices.
type Broadcaster interface {
	BroadcastToUser(userID uuid.UUID, event string, data any)
}

// Sync event names sent over the websocket hub.
const (
	EventFuelRecordAdded   = "fuel_record_added"
	EventFuelRecordDeleted = "fuel_record_deleted"
	EventOilChangeAdded    = "oil_change_added"
	EventOilChangeDeleted  = "oil_change_deleted"
	EventVehicleChanged    = "vehicle_changed"
)

// FuelService derives efficiency for new refueling events and aggregates
// consumption statistics over the fetched record set.
type FuelService struct {
	logger *zap.Logger
	store  FuelRecordStore
	hub    Broadcaster
}

// NewFuelService creates the fuel service.
func NewFuelService(logger *zap.Logger, store FuelRecordStore, hub Broadcaster) *FuelService {
	return &FuelService{logger: logger, store: store, hub: hub}
}

// List returns the session owner's records, event date descending,
// optionally narrowed to one vehicle. Free tier accounts see only their
// 5 most recent records; statistics computed downstream inherit the
// truncation, which is intended product behavior.
func (s *FuelService) List(ctx context.Context, sess *auth.Session, vehicleID *uuid.UUID) ([]*models.FuelRecord, error) {
	return s.store.List(ctx, sess.UserID, vehicleID, sess.Profile.FuelRecordFetchLimit())
}

// ListForAnalysis returns up to limit of the owner's most recent records
// without tier truncation. The suggestion analysis sees full history the
// way the original server-side job did.
func (s *FuelService) ListForAnalysis(ctx context.Context, sess *auth.Session, vehicleID *uuid.UUID, limit int) ([]*models.FuelRecord, error) {
	return s.store.List(ctx, sess.UserID, vehicleID, limit)
}

// Add validates the input, derives km_per_liter from the vehicle's most
// recent prior record, and persists the event. The owner id comes from
// the session, never from the payload.
//
// The latest-prior lookup and the insert are two separate round trips;
// concurrent submissions for the same vehicle can race and derive a stale
// value. Accepted limitation.
func (s *FuelService) Add(ctx context.Context, sess *auth.Session, input *models.FuelRecordInput) (*models.FuelRecord, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	var kmPerLiter *float64
	prior, err := s.store.GetLatestForVehicle(ctx, sess.UserID, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		kmPerLiter = models.DeriveKmPerLiter(prior.Odometer, input.Odometer, input.Liters)
	}

	rec := &models.FuelRecord{
		OwnerID:       sess.UserID,
		VehicleID:     input.VehicleID,
		StationID:     input.StationID,
		StationName:   input.StationName,
		Odometer:      input.Odometer,
		PricePerLiter: input.PricePerLiter,
		Liters:        input.Liters,
		TotalCost:     input.TotalCost,
		FuelType:      input.FuelType,
		KmPerLiter:    kmPerLiter,
		Notes:         input.Notes,
		Date:          input.Date,
	}
	if err := s.store.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.logger.Info("Fuel record added",
		zap.String("vehicle_id", rec.VehicleID.String()),
		zap.Float64("odometer", rec.Odometer))
	s.hub.BroadcastToUser(sess.UserID, EventFuelRecordAdded, rec)

	return rec, nil
}

// Delete removes exactly one record. Derived km_per_liter values of
// records that used the deleted one as baseline are not repaired.
func (s *FuelService) Delete(ctx context.Context, sess *auth.Session, id uuid.UUID) error {
	if err := s.store.Delete(ctx, sess.UserID, id); err != nil {
		return err
	}
	s.hub.BroadcastToUser(sess.UserID, EventFuelRecordDeleted, id)
	return nil
}

// Stats aggregates the given record set; nil on an empty set. Whatever
// truncation the fetch applied propagates transparently.
func (s *FuelService) Stats(records []*models.FuelRecord) *models.FuelStats {
	return models.ComputeFuelStats(records)
}

// LatestOdometer returns the most recent known odometer reading across
// the vehicle's fuel records, 0 when none exist. Used by callers as the
// current-odometer input to the oil status computation.
func (s *FuelService) LatestOdometer(ctx context.Context, sess *auth.Session, vehicleID uuid.UUID) (float64, error) {
	latest, err := s.store.GetLatestForVehicle(ctx, sess.UserID, vehicleID)
	if err != nil {
		return 0, err
	}
	if latest == nil {
		return 0, nil
	}
	return latest.Odometer, nil
}

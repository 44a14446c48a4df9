package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lucasmn/fueltrack/internal/auth"
	"github.com/lucasmn/fueltrack/internal/models"
)

// fakeHub records broadcast events for assertions.
type fakeHub struct {
	events []string
}

func (h *fakeHub) BroadcastToUser(_ uuid.UUID, event string, _ any) {
	h.events = append(h.events, event)
}

// fakeFuelStore is an in-memory FuelRecordStore ordering records the way
// the real store does: event date descending, then creation descending.
type fakeFuelStore struct {
	records []*models.FuelRecord
}

func (s *fakeFuelStore) sorted(ownerID uuid.UUID, vehicleID *uuid.UUID) []*models.FuelRecord {
	var out []*models.FuelRecord
	for _, r := range s.records {
		if r.OwnerID != ownerID {
			continue
		}
		if vehicleID != nil && r.VehicleID != *vehicleID {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *fakeFuelStore) Create(_ context.Context, rec *models.FuelRecord) error {
	rec.ID = uuid.New()
	rec.CreatedAt = time.Now()
	s.records = append(s.records, rec)
	return nil
}

func (s *fakeFuelStore) List(_ context.Context, ownerID uuid.UUID, vehicleID *uuid.UUID, limit int) ([]*models.FuelRecord, error) {
	out := s.sorted(ownerID, vehicleID)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *fakeFuelStore) GetLatestForVehicle(_ context.Context, ownerID, vehicleID uuid.UUID) (*models.FuelRecord, error) {
	out := s.sorted(ownerID, &vehicleID)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (s *fakeFuelStore) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	for i, r := range s.records {
		if r.ID == id && r.OwnerID == ownerID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// fakeOilStore is an in-memory OilChangeStore.
type fakeOilStore struct {
	changes []*models.OilChange
}

func (s *fakeOilStore) sorted(ownerID uuid.UUID, vehicleID *uuid.UUID) []*models.OilChange {
	var out []*models.OilChange
	for _, oc := range s.changes {
		if oc.OwnerID != ownerID {
			continue
		}
		if vehicleID != nil && oc.VehicleID != *vehicleID {
			continue
		}
		out = append(out, oc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func (s *fakeOilStore) Create(_ context.Context, oc *models.OilChange) error {
	oc.ID = uuid.New()
	oc.CreatedAt = time.Now()
	oc.UpdatedAt = oc.CreatedAt
	s.changes = append(s.changes, oc)
	return nil
}

func (s *fakeOilStore) List(_ context.Context, ownerID uuid.UUID, vehicleID *uuid.UUID) ([]*models.OilChange, error) {
	return s.sorted(ownerID, vehicleID), nil
}

func (s *fakeOilStore) GetLatestForVehicle(_ context.Context, ownerID, vehicleID uuid.UUID) (*models.OilChange, error) {
	out := s.sorted(ownerID, &vehicleID)
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (s *fakeOilStore) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	for _, oc := range s.changes {
		if oc.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (s *fakeOilStore) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	for i, oc := range s.changes {
		if oc.ID == id && oc.OwnerID == ownerID {
			s.changes = append(s.changes[:i], s.changes[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

// fakeVehicleStore is an in-memory VehicleStore.
type fakeVehicleStore struct {
	vehicles []*models.Vehicle
}

func (s *fakeVehicleStore) Create(_ context.Context, v *models.Vehicle) error {
	v.ID = uuid.New()
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	s.vehicles = append(s.vehicles, v)
	return nil
}

func (s *fakeVehicleStore) GetByID(_ context.Context, ownerID, id uuid.UUID) (*models.Vehicle, error) {
	for _, v := range s.vehicles {
		if v.ID == id && v.OwnerID == ownerID {
			return v, nil
		}
	}
	return nil, models.ErrNotFound
}

func (s *fakeVehicleStore) List(_ context.Context, ownerID uuid.UUID) ([]*models.Vehicle, error) {
	var out []*models.Vehicle
	for _, v := range s.vehicles {
		if v.OwnerID == ownerID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *fakeVehicleStore) CountByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	for _, v := range s.vehicles {
		if v.OwnerID == ownerID {
			count++
		}
	}
	return count, nil
}

func (s *fakeVehicleStore) Update(_ context.Context, v *models.Vehicle) error {
	for i, existing := range s.vehicles {
		if existing.ID == v.ID && existing.OwnerID == v.OwnerID {
			s.vehicles[i] = v
			return nil
		}
	}
	return models.ErrNotFound
}

func (s *fakeVehicleStore) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	for i, v := range s.vehicles {
		if v.ID == id && v.OwnerID == ownerID {
			s.vehicles = append(s.vehicles[:i], s.vehicles[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func freeSession() *auth.Session {
	return &auth.Session{UserID: uuid.New(), Profile: &models.Profile{}}
}

func proSession() *auth.Session {
	return &auth.Session{UserID: uuid.New(), Profile: &models.Profile{IsPro: true}}
}

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

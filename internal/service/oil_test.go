package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lucasmn/fueltrack/internal/models"
)

func validOilInput(vehicleID uuid.UUID, odometer float64, date time.Time) *models.OilChangeInput {
	return &models.OilChangeInput{
		VehicleID: vehicleID,
		Date:      date,
		Odometer:  odometer,
		OilType:   models.OilTypeSynthetic,
	}
}

func TestOilServiceCanAdd(t *testing.T) {
	store := &fakeOilStore{}
	svc := NewOilService(zap.NewNop(), store, &fakeHub{})
	sess := freeSession()
	ctx := context.Background()

	ok, err := svc.CanAdd(ctx, sess)
	require.NoError(t, err)
	assert.True(t, ok, "free tier allows the first oil change")

	_, err = svc.Add(ctx, sess, validOilInput(uuid.New(), 40000, day(0)))
	require.NoError(t, err)

	ok, err = svc.CanAdd(ctx, sess)
	require.NoError(t, err)
	assert.False(t, ok, "free tier caps at one record account-wide")

	// The cap counts across vehicles, not per vehicle.
	_, err = svc.Add(ctx, sess, validOilInput(uuid.New(), 60000, day(1)))
	assert.ErrorIs(t, err, models.ErrTierLimit)

	pro := proSession()
	for i := 0; i < 3; i++ {
		_, err := svc.Add(ctx, pro, validOilInput(uuid.New(), 40000, day(i)))
		require.NoError(t, err)
	}
	ok, err = svc.CanAdd(ctx, pro)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestOilServiceAddValidationBlocksWrite(t *testing.T) {
	store := &fakeOilStore{}
	hub := &fakeHub{}
	svc := NewOilService(zap.NewNop(), store, hub)

	input := validOilInput(uuid.New(), 40000, day(0))
	input.OilType = "vegetable"

	_, err := svc.Add(context.Background(), freeSession(), input)
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, store.changes)
	assert.Empty(t, hub.events)
}

func TestOilServiceAddBroadcasts(t *testing.T) {
	store := &fakeOilStore{}
	hub := &fakeHub{}
	svc := NewOilService(zap.NewNop(), store, hub)
	sess := freeSession()

	oc, err := svc.Add(context.Background(), sess, validOilInput(uuid.New(), 40000, day(0)))
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, oc.OwnerID)
	assert.Equal(t, []string{EventOilChangeAdded}, hub.events)
}

func TestOilServiceStatus(t *testing.T) {
	store := &fakeOilStore{}
	svc := NewOilService(zap.NewNop(), store, &fakeHub{})
	sess := freeSession()
	vehicleID := uuid.New()
	ctx := context.Background()

	status, err := svc.Status(ctx, sess, vehicleID, 45000)
	require.NoError(t, err)
	assert.Nil(t, status, "no history means no status")

	_, err = svc.Add(ctx, sess, validOilInput(vehicleID, 40000, day(0)))
	require.NoError(t, err)

	tests := []struct {
		name      string
		odometer  float64
		level     models.OilStatusLevel
		remaining float64
	}{
		{"well before due", 45000, models.OilStatusOK, 5000},
		{"inside warning window", 49600, models.OilStatusWarning, 400},
		{"exactly due", 50000, models.OilStatusOverdue, 0},
		{"past due", 50100, models.OilStatusOverdue, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := svc.Status(ctx, sess, vehicleID, tt.odometer)
			require.NoError(t, err)
			require.NotNil(t, status)
			assert.Equal(t, tt.level, status.Status)
			assert.Equal(t, 50000.0, status.NextKm)
			assert.Equal(t, tt.remaining, status.RemainingKm)
		})
	}
}

func TestOilServiceStatusUsesLatestChange(t *testing.T) {
	store := &fakeOilStore{}
	svc := NewOilService(zap.NewNop(), store, &fakeHub{})
	sess := proSession()
	vehicleID := uuid.New()
	ctx := context.Background()

	_, err := svc.Add(ctx, sess, validOilInput(vehicleID, 40000, day(0)))
	require.NoError(t, err)

	later := validOilInput(vehicleID, 50000, day(30))
	later.OilType = models.OilTypeMineral
	_, err = svc.Add(ctx, sess, later)
	require.NoError(t, err)

	status, err := svc.Status(ctx, sess, vehicleID, 52000)
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, 55000.0, status.NextKm)
	assert.Equal(t, models.OilStatusOK, status.Status)
}

func TestOilServiceDelete(t *testing.T) {
	store := &fakeOilStore{}
	hub := &fakeHub{}
	svc := NewOilService(zap.NewNop(), store, hub)
	sess := freeSession()
	ctx := context.Background()

	oc, err := svc.Add(ctx, sess, validOilInput(uuid.New(), 40000, day(0)))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, sess, oc.ID))
	assert.Empty(t, store.changes)
	assert.Contains(t, hub.events, EventOilChangeDeleted)

	// Deleting frees the tier slot again.
	ok, err := svc.CanAdd(ctx, sess)
	require.NoError(t, err)
	assert.True(t, ok)

	err = svc.Delete(ctx, sess, oc.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

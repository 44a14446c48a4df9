package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lucasmn/fueltrack/internal/models"
)

func validVehicleInput() *models.VehicleInput {
	return &models.VehicleInput{Name: "Daily driver", FuelType: "gasoline"}
}

func TestVehicleServiceAddTierCap(t *testing.T) {
	store := &fakeVehicleStore{}
	hub := &fakeHub{}
	svc := NewVehicleService(zap.NewNop(), store, hub)
	sess := freeSession()
	ctx := context.Background()

	v, err := svc.Add(ctx, sess, validVehicleInput())
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, v.OwnerID)
	assert.Equal(t, []string{EventVehicleChanged}, hub.events)

	_, err = svc.Add(ctx, sess, validVehicleInput())
	assert.ErrorIs(t, err, models.ErrTierLimit)
	assert.Len(t, store.vehicles, 1)

	// Another free account is unaffected by this one's cap.
	_, err = svc.Add(ctx, freeSession(), validVehicleInput())
	require.NoError(t, err)

	pro := proSession()
	for i := 0; i < 3; i++ {
		_, err := svc.Add(ctx, pro, validVehicleInput())
		require.NoError(t, err)
	}
}

func TestVehicleServiceAddValidationBlocksWrite(t *testing.T) {
	store := &fakeVehicleStore{}
	svc := NewVehicleService(zap.NewNop(), store, &fakeHub{})

	input := validVehicleInput()
	input.Name = "   "

	_, err := svc.Add(context.Background(), freeSession(), input)
	require.ErrorIs(t, err, models.ErrValidation)
	assert.Empty(t, store.vehicles)
}

func TestVehicleServiceUpdate(t *testing.T) {
	store := &fakeVehicleStore{}
	hub := &fakeHub{}
	svc := NewVehicleService(zap.NewNop(), store, hub)
	sess := freeSession()
	ctx := context.Background()

	v, err := svc.Add(ctx, sess, validVehicleInput())
	require.NoError(t, err)

	input := validVehicleInput()
	input.Name = "Weekend car"
	updated, err := svc.Update(ctx, sess, v.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Weekend car", updated.Name)
	assert.Equal(t, v.ID, updated.ID)

	// Only the owner can update.
	_, err = svc.Update(ctx, freeSession(), v.ID, validVehicleInput())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestVehicleServiceDelete(t *testing.T) {
	store := &fakeVehicleStore{}
	svc := NewVehicleService(zap.NewNop(), store, &fakeHub{})
	sess := freeSession()
	ctx := context.Background()

	v, err := svc.Add(ctx, sess, validVehicleInput())
	require.NoError(t, err)

	err = svc.Delete(ctx, freeSession(), v.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, sess, v.ID))
	assert.Empty(t, store.vehicles)

	// Deleting frees the free-tier slot.
	_, err = svc.Add(ctx, sess, validVehicleInput())
	require.NoError(t, err)
}

func TestVehicleServiceList(t *testing.T) {
	store := &fakeVehicleStore{}
	svc := NewVehicleService(zap.NewNop(), store, &fakeHub{})
	sess := proSession()
	other := proSession()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Add(ctx, sess, validVehicleInput())
		require.NoError(t, err)
	}
	_, err := svc.Add(ctx, other, validVehicleInput())
	require.NoError(t, err)

	vehicles, err := svc.List(ctx, sess)
	require.NoError(t, err)
	assert.Len(t, vehicles, 2)
	for _, v := range vehicles {
		assert.Equal(t, sess.UserID, v.OwnerID)
	}

	vehicles, err = svc.List(ctx, freeSession())
	require.NoError(t, err)
	assert.Empty(t, vehicles)
}

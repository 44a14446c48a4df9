package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfile_FuelRecordFetchLimit(t *testing.T) {
	assert.Equal(t, 0, (&Profile{IsPro: true}).FuelRecordFetchLimit())
	assert.Equal(t, 5, (&Profile{}).FuelRecordFetchLimit())
}

func TestProfile_CanAddOilChange(t *testing.T) {
	pro := &Profile{IsPro: true}
	free := &Profile{}

	assert.True(t, pro.CanAddOilChange(100))
	assert.True(t, free.CanAddOilChange(0))
	assert.False(t, free.CanAddOilChange(1))
}

func TestProfile_CanAddVehicle(t *testing.T) {
	pro := &Profile{IsPro: true}
	free := &Profile{}

	assert.True(t, pro.CanAddVehicle(10))
	assert.True(t, free.CanAddVehicle(0))
	assert.False(t, free.CanAddVehicle(1))
}

func TestProfile_MapUses(t *testing.T) {
	pro := &Profile{IsPro: true, MapUsesCount: 99}
	assert.True(t, pro.CanUseMap())
	assert.Equal(t, -1, pro.RemainingMapUses())

	free := &Profile{MapUsesCount: 0}
	assert.True(t, free.CanUseMap())
	assert.Equal(t, 2, free.RemainingMapUses())

	exhausted := &Profile{MapUsesCount: 2}
	assert.False(t, exhausted.CanUseMap())
	assert.Equal(t, 0, exhausted.RemainingMapUses())
}

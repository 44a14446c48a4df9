package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOilType_IsValid(t *testing.T) {
	tests := []struct {
		oilType OilType
		want    bool
	}{
		{OilTypeMineral, true},
		{OilTypeSemiSynthetic, true},
		{OilTypeSynthetic, true},
		{OilType("castor"), false},
		{OilType(""), false},
	}
	for _, tt := range tests {
		t.Run(string(tt.oilType), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.oilType.IsValid())
		})
	}
}

func TestOilChange_NextDueOdometer(t *testing.T) {
	tests := []struct {
		oilType  OilType
		odometer float64
		want     float64
	}{
		{OilTypeMineral, 40000, 45000},
		{OilTypeSemiSynthetic, 40000, 47500},
		{OilTypeSynthetic, 40000, 50000},
	}
	for _, tt := range tests {
		t.Run(string(tt.oilType), func(t *testing.T) {
			oc := &OilChange{Odometer: tt.odometer, OilType: tt.oilType}
			assert.Equal(t, tt.want, oc.NextDueOdometer())
		})
	}
}

func TestComputeOilStatus(t *testing.T) {
	t.Run("nil without a latest change", func(t *testing.T) {
		assert.Nil(t, ComputeOilStatus(nil, 45000))
	})

	latest := &OilChange{Odometer: 40000, OilType: OilTypeSynthetic} // due at 50000

	tests := []struct {
		name            string
		currentOdometer float64
		wantStatus      OilStatusLevel
		wantRemaining   float64
	}{
		{"well before due", 45000, OilStatusOK, 5000},
		{"inside warning window", 49600, OilStatusWarning, 400},
		{"exactly at warning threshold", 49500, OilStatusWarning, 500},
		{"exactly due", 50000, OilStatusOverdue, 0},
		{"past due", 50100, OilStatusOverdue, -100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := ComputeOilStatus(latest, tt.currentOdometer)
			require.NotNil(t, status)
			assert.Equal(t, tt.wantStatus, status.Status)
			assert.Equal(t, 50000.0, status.NextKm)
			assert.Equal(t, tt.wantRemaining, status.RemainingKm)
		})
	}
}

func validOilInput() *OilChangeInput {
	return &OilChangeInput{
		VehicleID: uuid.New(),
		Date:      time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Odometer:  40000,
		OilType:   OilTypeSynthetic,
	}
}

func TestOilChangeInput_Validate(t *testing.T) {
	t.Run("valid input passes", func(t *testing.T) {
		require.NoError(t, validOilInput().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*OilChangeInput)
		message string
	}{
		{"missing vehicle", func(in *OilChangeInput) { in.VehicleID = uuid.Nil }, "vehicle id is required"},
		{"missing date", func(in *OilChangeInput) { in.Date = time.Time{} }, "date is required"},
		{"zero odometer", func(in *OilChangeInput) { in.Odometer = 0 }, "odometer must be positive"},
		{"odometer too high", func(in *OilChangeInput) { in.Odometer = 10_000_000 }, "odometer is too high"},
		{"unknown oil type", func(in *OilChangeInput) { in.OilType = "castor" }, "oil type is invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validOilInput()
			tt.mutate(in)
			err := in.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

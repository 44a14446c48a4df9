package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lucasmn/fueltrack/internal/models"
)

// ListVehicles returns the account's vehicles.
func (h *Handler) ListVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.List(c.Request.Context(), session(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicles})
}

// AddVehicle registers a vehicle.
func (h *Handler) AddVehicle(c *gin.Context) {
	var input models.VehicleInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.Add(c.Request.Context(), session(c), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": vehicle})
}

// UpdateVehicle rewrites a vehicle's editable fields.
func (h *Handler) UpdateVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	var input models.VehicleInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), session(c), id, &input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": vehicle})
}

// DeleteVehicle removes a vehicle and, through the store, its records.
func (h *Handler) DeleteVehicle(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), session(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted"})
}

// GetOilStatus reports the vehicle's oil service due-state. The current
// odometer is joined in here from the vehicle's most recent fuel record,
// falling back to 0 when it has none.
func (h *Handler) GetOilStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	sess := session(c)

	currentOdometer, err := h.fuelService.LatestOdometer(c.Request.Context(), sess, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	status, err := h.oilService.Status(c.Request.Context(), sess, id, currentOdometer)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if status == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": status})
}

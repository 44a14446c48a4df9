package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lucasmn/fueltrack/internal/models"
)

// vehicleFilter parses the optional vehicle_id query parameter.
func vehicleFilter(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("vehicle_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// ListFuelRecords returns the account's refueling history, newest first.
// Free tier responses are truncated to the 5 most recent records.
func (h *Handler) ListFuelRecords(c *gin.Context) {
	vehicleID, ok := vehicleFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	records, err := h.fuelService.List(c.Request.Context(), session(c), vehicleID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": records})
}

// AddFuelRecord validates and persists a refueling event, deriving
// km_per_liter from the vehicle's previous record.
func (h *Handler) AddFuelRecord(c *gin.Context) {
	var input models.FuelRecordInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	record, err := h.fuelService.Add(c.Request.Context(), session(c), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": record})
}

// DeleteFuelRecord removes one record.
func (h *Handler) DeleteFuelRecord(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	if err := h.fuelService.Delete(c.Request.Context(), session(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}

// GetFuelStats aggregates consumption statistics over the same record
// set a list fetch would return, tier truncation included.
func (h *Handler) GetFuelStats(c *gin.Context) {
	vehicleID, ok := vehicleFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	records, err := h.fuelService.List(c.Request.Context(), session(c), vehicleID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	stats := h.fuelService.Stats(records)
	if stats == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

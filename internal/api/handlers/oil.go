package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lucasmn/fueltrack/internal/models"
)

// ListOilChanges returns the account's oil change history, newest first.
func (h *Handler) ListOilChanges(c *gin.Context) {
	vehicleID, ok := vehicleFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	changes, err := h.oilService.List(c.Request.Context(), session(c), vehicleID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": changes})
}

// AddOilChange records an oil change, gated by the account tier.
func (h *Handler) AddOilChange(c *gin.Context) {
	var input models.OilChangeInput
	if err := c.BindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	change, err := h.oilService.Add(c.Request.Context(), session(c), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": change})
}

// DeleteOilChange removes one oil change.
func (h *Handler) DeleteOilChange(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid oil change ID"})
		return
	}

	if err := h.oilService.Delete(c.Request.Context(), session(c), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Oil change deleted"})
}

// CanAddOilChange exposes the tier gate as a read, so clients can show
// the upsell before the user fills the form.
func (h *Handler) CanAddOilChange(c *gin.Context) {
	ok, err := h.oilService.CanAdd(c.Request.Context(), session(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"can_add": ok}})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lucasmn/fueltrack/internal/api/suggest"
	"github.com/lucasmn/fueltrack/internal/models"
)

// suggestionRecordLimit caps how much history is sent upstream.
const suggestionRecordLimit = 20

// GetSuggestions asks the AI collaborator for economy suggestions based
// on the account's last refuelings. The fetch here is untruncated by
// tier on purpose: the original analysis ran server-side with full
// history access.
func (h *Handler) GetSuggestions(c *gin.Context) {
	sess := session(c)
	ctx := c.Request.Context()

	vehicleID, ok := vehicleFilter(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID"})
		return
	}

	records, err := h.fuelService.ListForAnalysis(ctx, sess, vehicleID, suggestionRecordLimit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	var vehicle *models.Vehicle
	if len(records) > 0 {
		if v, err := h.vehicleRepo.GetByID(ctx, sess.UserID, records[0].VehicleID); err == nil {
			vehicle = v
		}
	}

	suggestions, err := h.suggestClient.Suggest(ctx, records, vehicle)
	if err != nil {
		var upErr *suggest.UpstreamError
		if errors.As(err, &upErr) {
			switch upErr.StatusCode {
			case http.StatusTooManyRequests:
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again in a few minutes."})
				return
			case http.StatusPaymentRequired:
				c.JSON(http.StatusPaymentRequired, gin.H{"error": "AI credits exhausted."})
				return
			}
		}
		h.logger.Error("Failed to generate suggestions", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to generate suggestions. Try again later."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"suggestions": suggestions}})
}

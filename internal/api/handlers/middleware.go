package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lucasmn/fueltrack/internal/auth"
	"github.com/lucasmn/fueltrack/internal/models"
)

const sessionKey = "session"

// RequireSession authenticates the bearer token and resolves the
// account's session (user id plus tier profile) for the request. Writes
// are short-circuited with 401 before any store call when no valid
// session exists.
func (h *Handler) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, err := h.jwtManager.ValidateAccessToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		profile, err := h.profileRepo.GetOrCreate(c.Request.Context(), userID)
		if err != nil {
			h.logger.Error("Failed to load profile", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
			return
		}

		c.Set(sessionKey, &auth.Session{UserID: userID, Profile: profile})
		c.Next()
	}
}

// session returns the request's resolved session.
func session(c *gin.Context) *auth.Session {
	return c.MustGet(sessionKey).(*auth.Session)
}

// respondError maps service errors onto HTTP statuses. Validation and
// tier errors carry their own user-facing messages; anything else is
// logged and replaced with a generic message so store internals never
// leak to clients.
func (h *Handler) respondError(c *gin.Context, err error) {
	var vErr *models.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, models.ErrTierLimit):
		c.JSON(http.StatusForbidden, gin.H{"error": "Free plan limit reached. Upgrade to Pro to add more."})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, models.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		h.logger.Error("Request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetProfile returns the account's tier profile.
func (h *Handler) GetProfile(c *gin.Context) {
	sess := session(c)
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"profile":            sess.Profile,
			"remaining_map_uses": sess.Profile.RemainingMapUses(),
		},
	})
}

// UpgradeProfile flips the account to the pro tier. Payment itself is
// handled outside this service; this is the post-payment callback.
func (h *Handler) UpgradeProfile(c *gin.Context) {
	sess := session(c)
	if err := h.profileRepo.SetPro(c.Request.Context(), sess.UserID, true); err != nil {
		h.respondError(c, err)
		return
	}

	h.logger.Info("Account upgraded to pro", zap.String("user_id", sess.UserID.String()))
	c.JSON(http.StatusOK, gin.H{"message": "Upgraded to Pro"})
}

// AccessMap consumes one map use on the free tier. Pro accounts are
// unlimited and never consume.
func (h *Handler) AccessMap(c *gin.Context) {
	sess := session(c)
	if sess.IsPro() {
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"granted": true, "remaining_uses": -1}})
		return
	}

	remaining, ok, err := h.profileRepo.ConsumeMapUse(c.Request.Context(), sess.UserID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Free plan limit reached. Upgrade to Pro to add more."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"granted": true, "remaining_uses": remaining}})
}

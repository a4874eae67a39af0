package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetSettings returns the public settings snapshot (rewards, bonuses,
// minimum withdrawal, payout methods, socials).
func (h *Handler) GetSettings(c *gin.Context) {
	settings := h.SettingsService.Snapshot(c.Request.Context())
	c.JSON(http.StatusOK, settings)
}

package handlers

import (
	"errors"
	"net/http"

	"earnfast/internal/service"

	"github.com/gin-gonic/gin"
)

// GetReferralCode returns the caller's invite code.
func (h *Handler) GetReferralCode(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.UserRepo.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": user.ReferralCode})
}

// GetReferralStats returns the caller's referral count and earnings.
func (h *Handler) GetReferralStats(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	stats, err := h.ReferralRepo.GetStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

type ApplyReferralRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyReferralCode redeems a referral code for the caller.
func (h *Handler) ApplyReferralCode(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ApplyReferralRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code is required"})
		return
	}

	settings := h.SettingsService.Snapshot(c.Request.Context())

	err := h.ReferralService.Apply(c.Request.Context(), userID, req.Code,
		settings.SignupBonus, settings.ReferBonus)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCode):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid referral code"})
		case errors.Is(err, service.ErrSelfReferral):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot use your own code"})
		case errors.Is(err, service.ErrAlreadyReferred):
			c.JSON(http.StatusBadRequest, gin.H{"error": "already referred"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to apply referral"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "referral applied",
		"bonus":   settings.SignupBonus,
	})
}

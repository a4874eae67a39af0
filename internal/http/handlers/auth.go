package handlers

import (
	"errors"
	"net/http"

	"earnfast/internal/domain"
	"earnfast/internal/repository"
	"earnfast/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthRequest struct {
	DeviceID  string `json:"device_id" binding:"required,min=8,max=128"`
	FirstName string `json:"first_name"`
}

// Auth creates or fetches the anonymous session for a device and
// returns a JWT. New profiles start with a zero balance and a freshly
// registered referral code.
func (h *Handler) Auth(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_id is required"})
		return
	}

	ctx := c.Request.Context()

	user, err := h.UserRepo.GetByDeviceID(ctx, req.DeviceID)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "auth failed"})
			return
		}
		firstName := req.FirstName
		if firstName == "" {
			firstName = "Guest"
		}
		user = &domain.User{
			DeviceID:  req.DeviceID,
			FirstName: firstName,
		}
		if err := h.UserRepo.Create(ctx, user); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}
	}

	token, err := service.GenerateJWT(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"earnfast/internal/domain"
	"earnfast/internal/http/middleware"
	"earnfast/internal/repository"
	"earnfast/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin authenticates an administrator and issues an admin JWT.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	admin, err := h.AdminRepo.GetByEmail(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAdminNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if !service.VerifyPassword(admin.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := service.GenerateAdminJWT(admin.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// AdminStats returns platform totals.
func (h *Handler) AdminStats(c *gin.Context) {
	stats, err := h.AdminService.GetStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// AdminListWithdrawals returns requests filtered by status
// (default pending).
func (h *Handler) AdminListWithdrawals(c *gin.Context) {
	status := domain.WithdrawalStatus(c.DefaultQuery("status", string(domain.WithdrawalStatusPending)))
	switch status {
	case domain.WithdrawalStatusPending, domain.WithdrawalStatusPaid, domain.WithdrawalStatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	withdrawals, err := h.AdminService.ListWithdrawals(c.Request.Context(), status, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load withdrawals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"withdrawals": withdrawals})
}

// AdminPayWithdrawal marks a pending request as paid.
func (h *Handler) AdminPayWithdrawal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.AdminService.PayWithdrawal(c.Request.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusConflict, gin.H{"error": "withdrawal not found or not pending"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark paid"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "withdrawal paid"})
}

// AdminRejectWithdrawal marks a pending request as rejected and refunds
// the coins exactly once.
func (h *Handler) AdminRejectWithdrawal(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.AdminService.RejectWithdrawal(c.Request.Context(), id); err != nil {
		middleware.LedgerOps.WithLabelValues("refund_withdrawal", "error").Inc()
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, service.ErrNotRejected) {
			c.JSON(http.StatusConflict, gin.H{"error": "withdrawal not found or not pending"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reject withdrawal"})
		return
	}

	middleware.LedgerOps.WithLabelValues("refund_withdrawal", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"message": "withdrawal rejected and refunded"})
}

// AdminUpdateSettings replaces the global settings.
func (h *Handler) AdminUpdateSettings(c *gin.Context) {
	var settings domain.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings payload"})
		return
	}

	if err := h.SettingsService.Update(c.Request.Context(), settings); err != nil {
		if errors.Is(err, service.ErrInvalidSettings) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid settings values"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "settings updated"})
}

package handlers

import (
	"errors"
	"net/http"

	"earnfast/internal/http/middleware"
	"earnfast/internal/service"

	"github.com/gin-gonic/gin"
)

type WithdrawRequest struct {
	Amount  int64  `json:"amount" binding:"required,min=1"`
	Method  string `json:"method" binding:"required"`
	Details string `json:"details" binding:"required"`
}

// CreateWithdrawal debits the caller's balance and files a pending
// payout request in one transaction.
func (h *Handler) CreateWithdrawal(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount, method and details are required"})
		return
	}

	settings := h.SettingsService.Snapshot(c.Request.Context())

	w, err := h.Ledger.DebitWithdrawal(c.Request.Context(), userID,
		req.Amount, req.Method, req.Details, settings.MinWithdraw)
	if err != nil {
		middleware.LedgerOps.WithLabelValues("debit_withdrawal", "rejected").Inc()
		switch {
		case errors.Is(err, service.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, gin.H{"error": "insufficient coins"})
		case errors.Is(err, service.ErrBelowMinimum):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":        "amount below minimum withdrawal",
				"min_withdraw": settings.MinWithdraw,
			})
		case errors.Is(err, service.ErrMissingDetails), errors.Is(err, service.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit withdrawal"})
		}
		return
	}

	middleware.LedgerOps.WithLabelValues("debit_withdrawal", "ok").Inc()
	c.JSON(http.StatusOK, gin.H{"withdrawal": w})
}

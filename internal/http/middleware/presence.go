package middleware

import (
	"earnfast/internal/presence"

	"github.com/gin-gonic/gin"
)

// Presence refreshes the caller's heartbeat on every authenticated
// request. Requires the JWT middleware to have run first.
func Presence(tracker presence.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userIDVal, exists := c.Get("user_id"); exists {
			if userID, ok := userIDVal.(int64); ok {
				_ = tracker.Touch(c.Request.Context(), userID)
			}
		}
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"strings"

	"earnfast/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT authenticates user sessions and puts user_id into the context.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role, ok := parseBearer(c)
		if !ok || role != "user" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// AdminJWT authenticates admin sessions and puts admin_id into the
// context.
func AdminJWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, role, ok := parseBearer(c)
		if !ok || role != "admin" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set("admin_id", adminID)
		c.Next()
	}
}

func parseBearer(c *gin.Context) (int64, string, bool) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		// websocket clients cannot set headers; fall back to query param
		token = c.Query("token")
	}
	if token == "" {
		return 0, "", false
	}

	id, role, err := service.ParseJWT(token)
	if err != nil {
		return 0, "", false
	}
	return id, role, true
}

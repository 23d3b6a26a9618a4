package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/colective/fleet-backend-go/internal/service"
	"github.com/colective/fleet-backend-go/pkg/response"
)

// ContextUserIDKey is where RequireAuth stores the authenticated subject
const ContextUserIDKey = "authUserID"

// RequireAuth rejects requests without a valid bearer access token
func RequireAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.Unauthorized(c, "token required")
			c.Abort()
			return
		}

		claims, err := auth.ParseAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.Subject)
		c.Next()
	}
}

package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/csssensei/quiply/backend/internal/apperr"
	"github.com/csssensei/quiply/backend/internal/response"
	"github.com/csssensei/quiply/backend/internal/services"
)

// UserIDKey is where Auth stores the caller's id in the gin context.
const UserIDKey = "user_id"

// Auth requires a valid Bearer token and sets the caller's user id into the
// context for downstream handlers.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			response.AbortError(c, apperr.Authentication("Missing or invalid authorization header"))
			return
		}

		userID, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			response.AbortError(c, err)
			return
		}

		c.Set(UserIDKey, userID)
		c.Next()
	}
}

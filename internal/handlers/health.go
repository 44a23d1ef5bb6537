package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/csssensei/quiply/backend/internal/database"
)

// APIInfo describes the service and its endpoint surface.
func APIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":      "Quiply API",
		"version":   "1.0.0",
		"status":    "running",
		"timestamp": time.Now().UTC(),
		"endpoints": gin.H{
			"auth": gin.H{
				"register": "POST /api/v1/auth/register",
				"login":    "POST /api/v1/auth/login",
				"me":       "GET /api/v1/auth/me",
			},
			"quips": gin.H{
				"list":          "GET /api/v1/quips",
				"create":        "POST /api/v1/quips",
				"get":           "GET /api/v1/quips/:id",
				"upvote":        "POST /api/v1/quips/:id/up",
				"remove_upvote": "DELETE /api/v1/quips/:id/up",
				"repost":        "POST /api/v1/quips/:id/repost",
			},
			"comments": gin.H{
				"list":          "GET /api/v1/quips/:id/comments",
				"create":        "POST /api/v1/quips/:id/comments",
				"upvote":        "POST /api/v1/quips/comments/:id/up",
				"remove_upvote": "DELETE /api/v1/quips/comments/:id/up",
			},
			"users": gin.H{
				"profile": "GET /api/v1/users/:username",
				"quips":   "GET /api/v1/users/:username/quips",
				"reposts": "GET /api/v1/users/:username/reposts",
			},
		},
	})
}

// Health reports database reachability; 503 when the ping fails.
func Health(db database.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats := db.Health()
		status := http.StatusOK
		if stats["status"] != "up" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{
			"status":    stats["status"],
			"database":  stats,
			"timestamp": time.Now().UTC(),
		})
	}
}

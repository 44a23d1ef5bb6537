package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/csssensei/quiply/backend/internal/apperr"
	"github.com/csssensei/quiply/backend/internal/middleware"
)

func currentUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := raw.(int)
	return id, ok
}

func pathID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		return 0, apperr.NotFound("Resource not found")
	}
	return id, nil
}

func pageParam(c *gin.Context) (int, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return 0, apperr.Validation("Page must be a valid integer")
	}
	return page, nil
}

// Package response writes the uniform API envelope:
//
//	success: {"success": true, "data": ..., "message": ...}
//	error:   {"success": false, "message": ..., "error_code": ..., "details": ...}
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/csssensei/quiply/backend/internal/apperr"
)

func Success(c *gin.Context, status int, data any, message string) {
	body := gin.H{"success": true}
	if data != nil {
		body["data"] = data
	}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

func OK(c *gin.Context, data any, message string) {
	Success(c, http.StatusOK, data, message)
}

func Created(c *gin.Context, data any, message string) {
	Success(c, http.StatusCreated, data, message)
}

// Error maps a service error onto the envelope. Anything that is not an
// *apperr.Error is downgraded to a generic 500 so internals never reach the
// caller.
func Error(c *gin.Context, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		appErr = apperr.Internal("Internal server error")
	}

	status, code := statusCode(appErr.Kind)
	body := gin.H{"success": false, "message": appErr.Message, "error_code": code}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}
	c.JSON(status, body)
}

// AbortError is Error for middleware, stopping the handler chain.
func AbortError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

func statusCode(kind apperr.Kind) (int, string) {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest, "VALIDATION_ERROR"
	case apperr.KindAuthentication:
		return http.StatusUnauthorized, "AUTHENTICATION_ERROR"
	case apperr.KindAuthorization:
		return http.StatusForbidden, "AUTHORIZATION_ERROR"
	case apperr.KindNotFound:
		return http.StatusNotFound, "NOT_FOUND"
	case apperr.KindConflict:
		return http.StatusConflict, "CONFLICT_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"
	}
}

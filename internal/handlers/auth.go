package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/csssensei/quiply/backend/internal/apperr"
	"github.com/csssensei/quiply/backend/internal/models"
	"github.com/csssensei/quiply/backend/internal/response"
	"github.com/csssensei/quiply/backend/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var input models.RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	user, err := h.auth.Register(input.Username, input.Email, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	}, "User registered successfully")
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var input models.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	token, err := h.auth.Login(input.Username, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"token": token}, "Login successful")
}

// GetMe returns the current authenticated user
func (h *AuthHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}

	user, err := h.auth.GetUserByID(userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"bio":        user.Bio,
		"created_at": user.CreatedAt,
	}, "")
}

// UpdateMe updates the caller's bio, the only mutable profile field.
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		response.Error(c, apperr.Authentication("User not authenticated"))
		return
	}

	var input models.UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, apperr.Validation("Invalid request body"))
		return
	}

	user, err := h.auth.UpdateUser(userID, input.Bio)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"bio":        user.Bio,
		"created_at": user.CreatedAt,
	}, "Profile updated successfully")
}

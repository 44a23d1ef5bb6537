package handlers

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/csssensei/quiply/backend/internal/services"
)

// Handler combines all handler types
type Handler struct {
	Auth    *AuthHandler
	Quip    *QuipHandler
	Comment *CommentHandler
	User    *UserHandler

	AuthService *services.AuthService
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, logger *log.Logger, jwtSecret string, tokenTTL time.Duration) *Handler {
	authSvc := services.NewAuthService(db, logger, jwtSecret, tokenTTL)
	quipSvc := services.NewQuipService(db, logger)
	commentSvc := services.NewCommentService(db, logger)

	return &Handler{
		Auth:        NewAuthHandler(authSvc),
		Quip:        NewQuipHandler(quipSvc),
		Comment:     NewCommentHandler(commentSvc, quipSvc),
		User:        NewUserHandler(authSvc, quipSvc),
		AuthService: authSvc,
	}
}

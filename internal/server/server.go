package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/csssensei/quiply/backend/internal/config"
	"github.com/csssensei/quiply/backend/internal/database"
	"github.com/csssensei/quiply/backend/internal/handlers"
	"github.com/csssensei/quiply/backend/internal/middleware"
)

type Server struct {
	cfg     config.Config
	db      database.Service
	handler *handlers.Handler
}

// New wires the handler stack onto the database.
func New(cfg config.Config, db database.Service, logger *log.Logger) *Server {
	handler := handlers.NewHandler(db.GetDB(), logger, cfg.JWTSecret, cfg.TokenTTL)
	return &Server{cfg: cfg, db: db, handler: handler}
}

// HTTPServer returns a configured http.Server ready to listen.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	api := r.Group("/api/v1")
	{
		api.GET("", handlers.APIInfo)
		api.GET("/health", handlers.Health(s.db))

		// Auth routes (public)
		api.POST("/auth/register", s.handler.Auth.Register)
		api.POST("/auth/login", s.handler.Auth.Login)

		// Quip routes (public reads)
		api.GET("/quips", s.handler.Quip.GetFeed)
		api.GET("/quips/:id", s.handler.Quip.GetQuip)

		// Comment routes (public reads)
		api.GET("/quips/:id/comments", s.handler.Comment.GetComments)

		// User routes (public reads)
		api.GET("/users/:username", s.handler.User.GetUserProfile)
		api.GET("/users/:username/quips", s.handler.User.GetUserQuips)
		api.GET("/users/:username/reposts", s.handler.User.GetUserReposts)

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.Auth(s.handler.AuthService))
		{
			// Auth protected routes
			protected.GET("/auth/me", s.handler.Auth.GetMe)
			protected.PUT("/auth/me", s.handler.Auth.UpdateMe)

			// Quip protected routes
			protected.POST("/quips", s.handler.Quip.CreateQuip)
			protected.DELETE("/quips/:id", s.handler.Quip.DeleteQuip)
			protected.POST("/quips/:id/up", s.handler.Quip.AddUp)
			protected.DELETE("/quips/:id/up", s.handler.Quip.RemoveUp)
			protected.POST("/quips/:id/repost", s.handler.Quip.AddRepost)
			protected.DELETE("/quips/:id/repost", s.handler.Quip.RemoveRepost)

			// Comment protected routes
			protected.POST("/quips/:id/comments", s.handler.Comment.CreateComment)
			protected.POST("/quips/comments/:id/up", s.handler.Comment.AddUp)
			protected.DELETE("/quips/comments/:id/up", s.handler.Comment.RemoveUp)
			protected.DELETE("/quips/comments/:id", s.handler.Comment.DeleteComment)
		}
	}

	return r
}

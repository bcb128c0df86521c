// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"notes/config"
	"notes/internal/delivery/api/middleware"
	"notes/internal/delivery/api/router/handler"
	"notes/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	NoteHandler    *handler.NoteHandler
	UserHandler    *handler.UserHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Metrics `optional:"true"`
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	noteHandler    *handler.NoteHandler
	userHandler    *handler.UserHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		noteHandler:    params.NoteHandler,
		userHandler:    params.UserHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.HealthCheck)
	e.GET("/health", handler.HealthCheck)

	// Public auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	// API v1 routes
	apiV1 := e.Group("/api/v1")
	apiV1.Use(r.authMiddleware.Authenticate) // All API v1 routes require authentication

	usersGroup := apiV1.Group("/users")
	{
		usersGroup.GET("/me", r.userHandler.GetProfile)
		usersGroup.DELETE("/me", r.userHandler.DeleteAccount)
	}

	notesGroup := apiV1.Group("/notes")
	{
		notesGroup.POST("", r.noteHandler.CreateNote)
		notesGroup.GET("", r.noteHandler.ListNotes)
		notesGroup.GET("/:id", r.noteHandler.GetNote)
		notesGroup.PUT("/:id", r.noteHandler.UpdateNote)
		notesGroup.DELETE("/:id", r.noteHandler.DeleteNote)
	}
}

// RegisterMetricsRoute exposes the Prometheus registry when metrics are enabled.
func (r *router) RegisterMetricsRoute(e *echo.Echo) {
	if r.metrics == nil || r.config.Metrics == nil || !r.config.Metrics.Enabled {
		return
	}

	e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
}

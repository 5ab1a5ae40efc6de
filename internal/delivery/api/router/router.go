// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"savvy/config"
	"savvy/internal/delivery/api/middleware"
	"savvy/internal/delivery/api/router/handler"
	"savvy/internal/infra/metrics"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	CategoryHandler *handler.CategoryHandler
	RecordHandler   *handler.RecordHandler
	AuthMiddleware  *middleware.AuthMiddleware
	Metrics         *metrics.Metrics `optional:"true"`
	Config          *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	userHandler     *handler.UserHandler
	categoryHandler *handler.CategoryHandler
	recordHandler   *handler.RecordHandler
	authMiddleware  *middleware.AuthMiddleware
	metrics         *metrics.Metrics
	config          *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		userHandler:     params.UserHandler,
		categoryHandler: params.CategoryHandler,
		recordHandler:   params.RecordHandler,
		authMiddleware:  params.AuthMiddleware,
		metrics:         params.Metrics,
		config:          params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.metrics != nil && r.config.Metrics != nil && r.config.Metrics.Enabled {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}

	apiV1 := e.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/token", r.authHandler.Login)
		authGroup.POST("/token/refresh", r.authHandler.Refresh, r.authMiddleware.RequireRefreshToken)
	}

	apiV1.POST("/users", r.userHandler.RegisterUser)

	authed := apiV1.Group("", r.authMiddleware.Authenticate)

	usersGroup := authed.Group("/users")
	{
		usersGroup.GET("/me", r.userHandler.GetMe)
		usersGroup.PATCH("/:user_id", r.userHandler.UpdateUser)
		usersGroup.DELETE("/:user_id", r.userHandler.DeleteUser)
	}

	categoriesGroup := authed.Group("/categories")
	{
		categoriesGroup.GET("", r.categoryHandler.ListCategories)
		categoriesGroup.POST("", r.categoryHandler.CreateCategory)
		categoriesGroup.DELETE("/:category_id", r.categoryHandler.DeleteCategory)
	}

	recordsGroup := authed.Group("/records")
	{
		recordsGroup.GET("", r.recordHandler.ListRecords)
		recordsGroup.POST("", r.recordHandler.CreateRecord)
		recordsGroup.DELETE("/:record_id", r.recordHandler.DeleteRecord)
	}
}

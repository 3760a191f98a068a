// Package router contains routing for the HTTP API.
package router

import (
	"contacts/internal/delivery/api/middleware"
	"contacts/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ContactHandler *handler.ContactHandler
	AvatarHandler  *handler.AvatarHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	contactHandler *handler.ContactHandler
	avatarHandler  *handler.AvatarHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		contactHandler: params.ContactHandler,
		avatarHandler:  params.AvatarHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	// Public avatar files
	e.GET("/avatars/:name", r.avatarHandler.Serve)

	// Account routes
	usersGroup := e.Group("/users")
	{
		usersGroup.POST("/register", r.authHandler.Register)
		usersGroup.GET("/verify/:code", r.authHandler.VerifyEmail)
		usersGroup.POST("/verify", r.authHandler.ResendVerification)
		usersGroup.POST("/login", r.authHandler.Login)

		usersGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		usersGroup.GET("/current", r.authHandler.Current, r.authMiddleware.Authenticate)
		usersGroup.PATCH("/avatars", r.authHandler.UpdateAvatar, r.authMiddleware.Authenticate)
	}

	// Contact routes, all scoped to the authenticated owner
	contactsGroup := e.Group("/contacts")
	contactsGroup.Use(r.authMiddleware.Authenticate)
	{
		contactsGroup.GET("", r.contactHandler.List)
		contactsGroup.POST("", r.contactHandler.Create)
		contactsGroup.GET("/:id", r.contactHandler.Get, middleware.ValidateID)
		contactsGroup.PUT("/:id", r.contactHandler.Update, middleware.ValidateID)
		contactsGroup.DELETE("/:id", r.contactHandler.Delete, middleware.ValidateID)
		contactsGroup.PATCH("/:id/favorite", r.contactHandler.UpdateFavorite, middleware.ValidateID)
		contactsGroup.GET("/:id/qr", r.contactHandler.QRCode, middleware.ValidateID)
	}
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/handler"
	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/middleware"
)

// SetupAuthRouter initializes auth routes
func SetupAuthRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	authHandler := handler.GetAuthHandler()

	// Public routes
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/signin", authHandler.SignIn)

	// Protected routes
	protected := e.Group("/v1/auth")
	protected.Use(authMiddleware.Authenticate)

	protected.GET("/me", authHandler.Me)
	protected.POST("/signout", authHandler.SignOut)
}

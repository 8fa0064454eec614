package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/handler"
	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/middleware"
)

func SetupSubscriptionRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	subscriptionHandler := handler.GetSubscriptionHandler()

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)

	users.POST("/:id/subscribe", subscriptionHandler.Subscribe)
	users.DELETE("/:id/subscribe", subscriptionHandler.Unsubscribe)
	users.GET("/:id/subscription", subscriptionHandler.Status)
	users.GET("/:id/subscribers", subscriptionHandler.ListSubscribers)
	users.GET("/:id/subscribers/count", subscriptionHandler.SubscriberCount)

	subs := e.Group("/v1/subscriptions")
	subs.Use(authMiddleware.Authenticate)
	subs.GET("", subscriptionHandler.ListSubscriptions)
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/handler"
	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/middleware"
)

// SetupChatRouter sets up all chat routes (excluding the WebSocket
// endpoint).
func SetupChatRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	chatHandler := handler.GetChatHandler()

	chats := e.Group("/v1/chats")
	chats.Use(authMiddleware.Authenticate)

	chats.POST("", chatHandler.CreateChat)
	chats.GET("", chatHandler.ListChats)
	chats.GET("/:id/messages", chatHandler.GetMessages)

	// Sending resolves the chat from the receiver, creating it on
	// first contact.
	messages := e.Group("/v1/messages")
	messages.Use(authMiddleware.Authenticate)
	messages.POST("", chatHandler.SendMessage)
}

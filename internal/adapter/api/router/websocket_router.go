package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/handler"
)

// SetupWebSocketRouter wires the push channel endpoint. The handler
// authenticates through a query token instead of the middleware chain.
func SetupWebSocketRouter(e *echo.Echo) {
	websocketHandler := handler.GetWebSocketHandler()

	e.GET("/ws", websocketHandler.HandleWebSocket)
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/middleware"
)

func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	SetupAuthRouter(e, authMiddleware)
	SetupUserRouter(e, authMiddleware)
	SetupStoryRouter(e, authMiddleware)
	SetupChatRouter(e, authMiddleware)
	SetupPostRouter(e, authMiddleware)
	SetupSubscriptionRouter(e, authMiddleware)
	SetupFileRouter(e, authMiddleware)
	SetupWebSocketRouter(e)
	SetupHealthRouter(e)
}

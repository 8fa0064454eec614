package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/handler"
	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/middleware"
)

func SetupStoryRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	storyHandler := handler.GetStoryHandler()

	stories := e.Group("/v1/stories")
	stories.Use(authMiddleware.Authenticate)

	stories.POST("", storyHandler.CreateStory)
	stories.GET("", storyHandler.ListGroups)
	stories.POST("/viewed", storyHandler.MarkViewed)
	stories.DELETE("/:id", storyHandler.DeleteStory)
}

package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/handler"
	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/middleware"
)

func SetupFileRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	fileHandler := handler.GetFileHandler()

	files := e.Group("/v1/files")
	files.Use(authMiddleware.Authenticate)

	files.POST("", fileHandler.Upload)
	files.GET("/view", fileHandler.View)
	files.DELETE("", fileHandler.Delete)
}

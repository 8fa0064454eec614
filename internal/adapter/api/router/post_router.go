package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/handler"
	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/middleware"
)

func SetupPostRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	postHandler := handler.GetPostHandler()

	posts := e.Group("/v1/posts")
	posts.Use(authMiddleware.Authenticate)

	posts.POST("", postHandler.CreatePost)
	posts.GET("", postHandler.ListRecent)
	posts.GET("/saved", postHandler.ListSaved)
	posts.GET("/:id", postHandler.GetPost)
	posts.PUT("/:id", postHandler.UpdatePost)
	posts.DELETE("/:id", postHandler.DeletePost)
	posts.POST("/:id/like", postHandler.ToggleLike)
	posts.POST("/:id/comments", postHandler.CreateComment)
	posts.GET("/:id/comments", postHandler.ListComments)
	posts.POST("/:id/save", postHandler.SavePost)
	posts.DELETE("/:id/save", postHandler.UnsavePost)

	users := e.Group("/v1/users")
	users.Use(authMiddleware.Authenticate)
	users.GET("/:id/posts", postHandler.ListByUser)
}

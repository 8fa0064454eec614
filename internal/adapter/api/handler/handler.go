package handler

import (
	"github.com/Vadim-maker-source/vexnum/internal/adapter/api/middleware"
	"github.com/Vadim-maker-source/vexnum/internal/infrastructure/websocket"
	"github.com/Vadim-maker-source/vexnum/internal/usecase"
)

var (
	authHandler         *AuthHandler
	userHandler         *UserHandler
	storyHandler        *StoryHandler
	chatHandler         *ChatHandler
	postHandler         *PostHandler
	subscriptionHandler *SubscriptionHandler
	fileHandler         *FileHandler
	websocketHandler    *WebSocketHandler
)

func Setup(
	authUseCase *usecase.AuthUseCase,
	userUseCase *usecase.UserUseCase,
	storyUseCase *usecase.StoryUseCase,
	chatUseCase *usecase.ChatUseCase,
	postUseCase *usecase.PostUseCase,
	subscriptionUseCase *usecase.SubscriptionUseCase,
	storage usecase.FileStorage,
	wsManager *websocket.Manager,
	authMiddleware *middleware.AuthMiddleware,
) {
	authHandler = NewAuthHandler(authUseCase)
	userHandler = NewUserHandler(userUseCase, subscriptionUseCase)
	storyHandler = NewStoryHandler(storyUseCase)
	chatHandler = NewChatHandler(chatUseCase)
	postHandler = NewPostHandler(postUseCase)
	subscriptionHandler = NewSubscriptionHandler(subscriptionUseCase)
	fileHandler = NewFileHandler(storage)
	websocketHandler = NewWebSocketHandler(wsManager, authMiddleware)
}

func GetAuthHandler() *AuthHandler {
	return authHandler
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetStoryHandler() *StoryHandler {
	return storyHandler
}

func GetChatHandler() *ChatHandler {
	return chatHandler
}

func GetPostHandler() *PostHandler {
	return postHandler
}

func GetSubscriptionHandler() *SubscriptionHandler {
	return subscriptionHandler
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func GetWebSocketHandler() *WebSocketHandler {
	return websocketHandler
}

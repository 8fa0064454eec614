package handler

import (
	"mime/multipart"

	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/usecase"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
	"github.com/Vadim-maker-source/vexnum/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type createChatRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// CreateChat resolves the chat with another user, creating it on first
// contact.
func (h *ChatHandler) CreateChat(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createChatRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	chat, err := h.chatUseCase.GetOrCreateChat(c.Request().Context(), uid, req.UserID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chat)
}

func (h *ChatHandler) ListChats(c echo.Context) error {
	uid := c.Get("uid").(string)

	chats, err := h.chatUseCase.ListChats(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, chats)
}

func (h *ChatHandler) GetMessages(c echo.Context) error {
	uid := c.Get("uid").(string)

	messages, err := h.chatUseCase.GetMessages(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// SendMessage accepts a multipart form: receiver_id, optional content,
// and up to four image attachments.
func (h *ChatHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	receiverID := c.FormValue("receiver_id")
	if receiverID == "" {
		return response.Error(c, errors.BadRequest("receiver_id is required", nil))
	}

	images, closeFiles, err := openFormImages(c, "images")
	if err != nil {
		return response.Error(c, err)
	}
	defer closeFiles()

	message, err := h.chatUseCase.SendMessage(c.Request().Context(), usecase.SendMessageInput{
		SenderID:   uid,
		ReceiverID: receiverID,
		Content:    c.FormValue("content"),
		Images:     images,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}

// openFormImages opens every uploaded file under the given form field.
// The returned closer releases them after the use case has consumed
// the readers.
func openFormImages(c echo.Context, field string) ([]usecase.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all: treat as no attachments.
		return nil, func() {}, nil
	}

	headers := form.File[field]
	uploads := make([]usecase.Upload, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))

	closeFiles := func() {
		for _, file := range opened {
			file.Close()
		}
	}

	for _, header := range headers {
		src, err := header.Open()
		if err != nil {
			closeFiles()
			return nil, func() {}, errors.Internal("Failed to read uploaded file", err)
		}
		opened = append(opened, src)
		uploads = append(uploads, usecase.Upload{
			Reader:      src,
			ContentType: header.Header.Get("Content-Type"),
		})
	}

	return uploads, closeFiles, nil
}

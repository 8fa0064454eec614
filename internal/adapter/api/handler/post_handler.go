package handler

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/usecase"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
	"github.com/Vadim-maker-source/vexnum/pkg/response"
)

type PostHandler struct {
	postUseCase *usecase.PostUseCase
}

func NewPostHandler(postUseCase *usecase.PostUseCase) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
	}
}

// CreatePost accepts a multipart form: title, optional comma-separated
// hashtags, and one or more images.
func (h *PostHandler) CreatePost(c echo.Context) error {
	uid := c.Get("uid").(string)

	images, closeFiles, err := openFormImages(c, "images")
	if err != nil {
		return response.Error(c, err)
	}
	defer closeFiles()

	post, err := h.postUseCase.CreatePost(c.Request().Context(), usecase.CreatePostInput{
		UserID:   uid,
		Title:    c.FormValue("title"),
		Hashtags: splitHashtags(c.FormValue("hashtags")),
		Images:   images,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, post)
}

func (h *PostHandler) ListRecent(c echo.Context) error {
	posts, err := h.postUseCase.ListRecent(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, posts)
}

func (h *PostHandler) ListByUser(c echo.Context) error {
	posts, err := h.postUseCase.ListByUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, posts)
}

func (h *PostHandler) GetPost(c echo.Context) error {
	post, err := h.postUseCase.GetPost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}

type updatePostRequest struct {
	Title    string   `json:"title" validate:"omitempty,min=1"`
	Hashtags []string `json:"hashtags"`
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	post, err := h.postUseCase.UpdatePost(c.Request().Context(), uid, c.Param("id"), usecase.UpdatePostInput{
		Title:    req.Title,
		Hashtags: req.Hashtags,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.postUseCase.DeletePost(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

func (h *PostHandler) ToggleLike(c echo.Context) error {
	uid := c.Get("uid").(string)

	post, err := h.postUseCase.ToggleLike(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, post)
}

type createCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

func (h *PostHandler) CreateComment(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	comment, err := h.postUseCase.CreateComment(c.Request().Context(), uid, c.Param("id"), req.Content)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, comment)
}

func (h *PostHandler) ListComments(c echo.Context) error {
	comments, err := h.postUseCase.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, comments)
}

func (h *PostHandler) SavePost(c echo.Context) error {
	uid := c.Get("uid").(string)

	save, err := h.postUseCase.SavePost(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, save)
}

func (h *PostHandler) UnsavePost(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.postUseCase.UnsavePost(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "removed"})
}

func (h *PostHandler) ListSaved(c echo.Context) error {
	uid := c.Get("uid").(string)

	posts, err := h.postUseCase.ListSaved(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, posts)
}

func splitHashtags(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "#"))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

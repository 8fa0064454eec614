package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/usecase"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
	"github.com/Vadim-maker-source/vexnum/pkg/response"
)

type StoryHandler struct {
	storyUseCase *usecase.StoryUseCase
}

func NewStoryHandler(storyUseCase *usecase.StoryUseCase) *StoryHandler {
	return &StoryHandler{
		storyUseCase: storyUseCase,
	}
}

// CreateStory accepts a multipart upload: the media blob plus its type
// and, for videos, the declared duration in seconds.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("media")
	if err != nil {
		return response.Error(c, errors.BadRequest("Media file is required", err))
	}

	duration := 0
	if raw := c.FormValue("duration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil || duration < 0 {
			return response.Error(c, errors.BadRequest("Duration must be a non-negative integer", err))
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read media file", err))
	}
	defer src.Close()

	story, err := h.storyUseCase.CreateStory(c.Request().Context(), usecase.CreateStoryInput{
		AuthorID:  uid,
		MediaType: c.FormValue("media_type"),
		Duration:  duration,
		Media: usecase.Upload{
			Reader:      src,
			ContentType: fileHeader.Header.Get("Content-Type"),
		},
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, story)
}

// ListGroups returns the story tray for the signed-in user. The mode
// query parameter narrows it to subscribed authors.
func (h *StoryHandler) ListGroups(c echo.Context) error {
	uid := c.Get("uid").(string)

	mode := c.QueryParam("mode")
	if mode == "" {
		mode = usecase.ViewModeAll
	}

	groups, err := h.storyUseCase.ListGroups(c.Request().Context(), uid, mode)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, groups)
}

type markViewedRequest struct {
	AuthorID string `json:"author_id" validate:"required"`
	Mode     string `json:"mode" validate:"omitempty,oneof=all subscriptions"`
}

// MarkViewed flips an author's stories to viewed and returns the
// refreshed tray.
func (h *StoryHandler) MarkViewed(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req markViewedRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	if err := h.storyUseCase.MarkViewed(c.Request().Context(), req.AuthorID, uid); err != nil {
		return response.Error(c, err)
	}

	mode := req.Mode
	if mode == "" {
		mode = usecase.ViewModeAll
	}
	groups, err := h.storyUseCase.ListGroups(c.Request().Context(), uid, mode)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, groups)
}

func (h *StoryHandler) DeleteStory(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.storyUseCase.DeleteStory(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/usecase"
	"github.com/Vadim-maker-source/vexnum/pkg/errors"
	"github.com/Vadim-maker-source/vexnum/pkg/response"
	"github.com/Vadim-maker-source/vexnum/pkg/utils"
)

type UserHandler struct {
	userUseCase *usecase.UserUseCase
	subUseCase  *usecase.SubscriptionUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, subUseCase *usecase.SubscriptionUseCase) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		subUseCase:  subUseCase,
	}
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"omitempty,min=2"`
	Bio  string `json:"bio" validate:"omitempty,max=500"`
}

// GetProfile returns a user's profile with subscriber count.
func (h *UserHandler) GetProfile(c echo.Context) error {
	userID := c.Param("id")

	profile, err := h.userUseCase.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	count, err := h.subUseCase.SubscriberCount(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"profile":          profile,
		"subscriber_count": count,
	})
}

func (h *UserHandler) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, errors.BadRequest("Invalid request body", err))
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	profile, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, usecase.UpdateProfileInput{
		Name: req.Name,
		Bio:  req.Bio,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *UserHandler) UpdateAvatar(c echo.Context) error {
	uid := c.Get("uid").(string)

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return response.Error(c, errors.BadRequest("Avatar file is required", err))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to read avatar file", err))
	}
	defer src.Close()

	profile, err := h.userUseCase.UpdateAvatar(c.Request().Context(), uid, usecase.Upload{
		Reader:      src,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, profile)
}

func (h *UserHandler) ListUsers(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	profiles, total, err := h.userUseCase.ListUsers(c.Request().Context(), params.PageSize, params.Offset)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, profiles, total, params.Page, params.PageSize)
}

package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Vadim-maker-source/vexnum/internal/usecase"
	"github.com/Vadim-maker-source/vexnum/pkg/response"
)

type SubscriptionHandler struct {
	subUseCase *usecase.SubscriptionUseCase
}

func NewSubscriptionHandler(subUseCase *usecase.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{
		subUseCase: subUseCase,
	}
}

func (h *SubscriptionHandler) Subscribe(c echo.Context) error {
	uid := c.Get("uid").(string)

	sub, err := h.subUseCase.Subscribe(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, sub)
}

func (h *SubscriptionHandler) Unsubscribe(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.subUseCase.Unsubscribe(c.Request().Context(), uid, c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "unsubscribed"})
}

func (h *SubscriptionHandler) Status(c echo.Context) error {
	uid := c.Get("uid").(string)

	subscribed, err := h.subUseCase.IsSubscribed(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]bool{"subscribed": subscribed})
}

func (h *SubscriptionHandler) ListSubscriptions(c echo.Context) error {
	uid := c.Get("uid").(string)

	subs, err := h.subUseCase.ListSubscriptions(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, subs)
}

func (h *SubscriptionHandler) ListSubscribers(c echo.Context) error {
	subs, err := h.subUseCase.ListSubscribers(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, subs)
}

func (h *SubscriptionHandler) SubscriberCount(c echo.Context) error {
	count, err := h.subUseCase.SubscriberCount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]int64{"count": count})
}

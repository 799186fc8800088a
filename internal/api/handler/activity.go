package handler

import (
	"errors"
	"net/http"

	"streakbot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupActivity struct {
	container *do.Injector
}

type checkInRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

func (gr *groupActivity) CheckIn(c echo.Context) error {
	serviceAttendance, err := do.Invoke[*services.ServiceAttendance](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var req checkInRequest
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Invalid))
	}

	result, err := serviceAttendance.CheckIn(c.Request().Context(), req.UserID, req.Username)
	if errors.Is(err, services.ErrAlreadyCheckedIn) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, result, nil)
}

type messageRequest struct {
	UserID    int64 `json:"user_id"`
	MessageID int64 `json:"message_id"`
}

func (gr *groupActivity) Message(c echo.Context) error {
	serviceChatActivity, err := do.Invoke[*services.ServiceChatActivity](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var req messageRequest
	if err := c.Bind(&req); err != nil || req.UserID == 0 {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Invalid))
	}

	result, err := serviceChatActivity.ProcessMessage(c.Request().Context(), req.UserID, req.MessageID)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	if result == nil {
		// unregistered sender; nothing scored
		return c.NoContent(http.StatusNoContent)
	}

	return httpx.RestAbort(c, result, nil)
}

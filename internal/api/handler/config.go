package handler

import (
	"errors"

	"streakbot/internal/models"
	"streakbot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupConfig struct {
	container *do.Injector
}

func (gr *groupConfig) GetScoreConfig(c echo.Context) error {
	serviceConfig, err := do.Invoke[*services.ServiceConfig](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	cfg, err := serviceConfig.GetScoreConfig(c.Request().Context())
	if errors.Is(err, services.ErrInvalidScoreConfig) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, cfg, nil)
}

func (gr *groupConfig) UpdateScoreConfig(c echo.Context) error {
	serviceConfig, err := do.Invoke[*services.ServiceConfig](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	var cfg models.ScoreConfig
	if err := c.Bind(&cfg); err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid payload"), errorx.Invalid))
	}

	updated, err := serviceConfig.UpdateScoreConfig(c.Request().Context(), &cfg)
	if errors.Is(err, services.ErrInvalidScoreConfig) {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
	}
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, updated, nil)
}

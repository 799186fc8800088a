package handler

import (
	"errors"
	"strconv"

	"streakbot/internal/models"
	"streakbot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupRanking struct {
	container *do.Injector
}

func (gr *groupRanking) GetRanking(c echo.Context) error {
	serviceRanking, err := do.Invoke[*services.ServiceRanking](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	rankingType, ok := models.ParseRankingType(c.Param("type"))
	if !ok {
		return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("unknown ranking type"), errorx.Invalid))
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := serviceRanking.GetRanking(c.Request().Context(), rankingType, limit)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, result, nil)
}

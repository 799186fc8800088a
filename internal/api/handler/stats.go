package handler

import (
	"errors"
	"strconv"
	"time"

	"streakbot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

type groupStats struct {
	container *do.Injector
}

func (gr *groupStats) GetDailyStats(c echo.Context) error {
	serviceStats, err := do.Invoke[*services.ServiceStats](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	date := time.Now()
	if v := c.QueryParam("date"); v != "" {
		date, err = time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid date, expected YYYY-MM-DD"), errorx.Invalid))
		}
	}

	stats, err := serviceStats.GetDailyStats(c.Request().Context(), date)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, stats, nil)
}

func (gr *groupStats) GetMonthlyStats(c echo.Context) error {
	serviceStats, err := do.Invoke[*services.ServiceStats](gr.container)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	now := time.Now()
	year, month := now.Year(), int(now.Month())
	if v := c.QueryParam("year"); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid year"), errorx.Invalid))
		}
	}
	if v := c.QueryParam("month"); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil || month < 1 || month > 12 {
			return httpx.RestAbort(c, nil, errorx.Wrap(errors.New("invalid month"), errorx.Invalid))
		}
	}

	stats, err := serviceStats.GetMonthlyStats(c.Request().Context(), year, month)
	if err != nil {
		return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
	}

	return httpx.RestAbort(c, stats, nil)
}

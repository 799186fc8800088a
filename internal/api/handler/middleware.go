package handler

import (
	"errors"

	"streakbot/internal/interfaces"
	"streakbot/internal/pkg/limiter"

	"github.com/go-redis/redis_rate/v10"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo/v4"
	"github.com/samber/do"
)

// RateLimit throttles a route per client IP. Without a limiter in the
// container the route runs unthrottled.
func RateLimit(container *do.Injector, name string, perMinute int) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l, err := do.Invoke[interfaces.Limiter](container)
			if err != nil {
				return next(c)
			}

			key := name + ":" + c.RealIP()
			err = l.Allow(c.Request().Context(), key, redis_rate.PerMinute(perMinute))
			if errors.Is(err, limiter.ErrRateLimited) {
				return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Invalid))
			}
			if err != nil {
				return httpx.RestAbort(c, nil, errorx.Wrap(err, errorx.Service))
			}

			return next(c)
		}
	}
}

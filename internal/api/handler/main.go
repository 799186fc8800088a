package handler

import (
	"net/http"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "📆")
	})

	routesAPIv1 := r.Group("/api/v1")
	{
		cors := middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     cfg.Origins,
			AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
			AllowCredentials: true,
			MaxAge:           60 * 60,
		})
		routesAPIv1.Use(cors)

		a := groupActivity{cfg.Container}
		routesAPIv1.POST("/checkin", a.CheckIn, RateLimit(cfg.Container, "checkin", 10))
		routesAPIv1.POST("/message", a.Message, RateLimit(cfg.Container, "message", 60))

		u := groupUser{cfg.Container}
		routesAPIv1.GET("/user/:id", u.GetUserInfo)

		rk := groupRanking{cfg.Container}
		routesAPIv1.GET("/ranking/:type", rk.GetRanking)

		s := groupStats{cfg.Container}
		routesAPIv1.GET("/stats/daily", s.GetDailyStats)
		routesAPIv1.GET("/stats/monthly", s.GetMonthlyStats)

		cf := groupConfig{cfg.Container}
		routesAPIv1.GET("/config", cf.GetScoreConfig)
		routesAPIv1.PUT("/config", cf.UpdateScoreConfig)
	}

	return r, nil
}

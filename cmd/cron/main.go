package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"streakbot/internal/datastore"
	"streakbot/internal/interfaces"
	"streakbot/internal/models"
	"streakbot/internal/pkg/caching"
	"streakbot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/samber/do"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/urfave/cli/v2"
	tele "gopkg.in/telebot.v3"
)

func init() {
	// for development
	//nolint:errcheck
	godotenv.Load("../../.env")

	// for production
	//nolint:errcheck
	godotenv.Load("./.env")
}

func main() {
	app := &cli.App{
		Name: "cronjob",
		Commands: []*cli.Command{
			commandCronjob(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandCronjob() *cli.Command {
	return &cli.Command{
		Name: "cron",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "daily",
				Value:   "55 23 * * *",
				Usage:   "cron spec for the daily digest",
				EnvVars: []string{"DIGEST_DAILY_SPEC"},
			},
			&cli.StringFlag{
				Name:    "monthly",
				Value:   "0 9 1 * *",
				Usage:   "cron spec for the monthly recap",
				EnvVars: []string{"DIGEST_MONTHLY_SPEC"},
			},
		},
		Action: func(c *cli.Context) error {
			vs, err := env.EnvsRequired(
				"BOT_TOKEN",
				"DB_DSN",
				"GROUP_CHAT_ID",
			)
			if err != nil {
				return err
			}

			chatID, err := strconv.ParseInt(vs["GROUP_CHAT_ID"], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid GROUP_CHAT_ID: %w", err)
			}

			container := NewContainer(vs)

			bot, err := tele.NewBot(tele.Settings{Token: vs["BOT_TOKEN"]})
			if err != nil {
				return err
			}

			cronRunner := cron.New()

			digestJob := NewDigestJob(container, bot, chatID, c.String("daily"), c.String("monthly"))
			if err := digestJob.Start(cronRunner); err != nil {
				return err
			}

			log.Println("Start cronjob")
			cronRunner.Run()
			return nil
		},
	}
}

func NewContainer(vs map[string]string) *do.Injector {
	injector := do.New()
	do.ProvideNamedValue(injector, "envs", vs)

	do.Provide(injector, func(i *do.Injector) (*bun.DB, error) {
		sqldb := sql.OpenDB(pgdriver.NewConnector(
			pgdriver.WithDSN(os.Getenv("DB_DSN")),
			pgdriver.WithPassword(os.Getenv("DB_PASSWORD")),
		))

		db := bun.NewDB(sqldb, pgdialect.New())
		return db, nil
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		// digests run a handful of queries a day; the in-process layer
		// is enough
		return caching.NewCacheRedis(nil, true)
	})

	do.Provide(injector, func(i *do.Injector) (interfaces.Store, error) {
		dbPostgres, err := do.Invoke[*bun.DB](i)
		if err != nil {
			return nil, err
		}

		return datastore.NewStore(dbPostgres), nil
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceConfig, error) {
		return services.NewServiceConfig(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceStats, error) {
		return services.NewServiceStats(injector)
	})

	return injector
}

func dailyDigestText(stats *models.DailyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌙 Daily recap, %s\n", stats.Date.Format("Jan 02"))
	fmt.Fprintf(&b, "Check-ins: %d\n", stats.CheckInCount)
	fmt.Fprintf(&b, "Messages: %d from %d user(s)\n", stats.TotalMessages, stats.TotalUsers)
	fmt.Fprintf(&b, "Points awarded: %d\n", stats.TotalScore)
	fmt.Fprintf(&b, "Jackpots: %d", stats.JackpotCount)
	if len(stats.TopUsers) > 0 {
		b.WriteString("\n\nTop users:")
		for i, u := range stats.TopUsers {
			fmt.Fprintf(&b, "\n%d. %s - %d pts", i+1, digestName(u), u.TotalScore)
		}
	}
	b.WriteString("\n\nSee you tomorrow! /checkin")
	return b.String()
}

func monthlyDigestText(stats *models.MonthlyStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗓 Monthly recap, %04d-%02d\n", stats.Year, stats.Month)
	fmt.Fprintf(&b, "Check-ins: %d\n", stats.CheckInCount)
	fmt.Fprintf(&b, "Messages: %d from %d user(s)\n", stats.TotalMessages, stats.TotalUsers)
	fmt.Fprintf(&b, "Points awarded: %d\n", stats.TotalScore)
	fmt.Fprintf(&b, "Jackpots: %d", stats.JackpotCount)
	if stats.MostActiveDate != nil {
		fmt.Fprintf(&b, "\nBusiest day: %s (%d messages)", stats.MostActiveDate.Format("Jan 02"), stats.MostActiveCount)
	}
	if len(stats.TopUsers) > 0 {
		b.WriteString("\n\nTop users:")
		for i, u := range stats.TopUsers {
			fmt.Fprintf(&b, "\n%d. %s - %d pts", i+1, digestName(u), u.TotalScore)
		}
	}
	return b.String()
}

func digestName(u models.UserStats) string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return fmt.Sprintf("user %d", u.UserID)
}

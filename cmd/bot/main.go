package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"streakbot/internal/datastore"
	"streakbot/internal/interfaces"
	"streakbot/internal/models"
	"streakbot/internal/pkg/caching"
	"streakbot/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/db"
	"github.com/hiendaovinh/toolkit/pkg/env"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
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
		Name: "bot-telegram",
		Commands: []*cli.Command{
			commandBot(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func commandBot() *cli.Command {
	return &cli.Command{
		Name:   "server",
		Action: action,
	}
}

func action(c *cli.Context) error {
	vs, err := env.EnvsRequired(
		"BOT_TOKEN",
		"DB_DSN",
		"REDIS_CACHE",
	)
	if err != nil {
		return err
	}

	container := NewContainer(vs)

	serviceAttendance, err := do.Invoke[*services.ServiceAttendance](container)
	if err != nil {
		return err
	}
	serviceChatActivity, err := do.Invoke[*services.ServiceChatActivity](container)
	if err != nil {
		return err
	}
	serviceUser, err := do.Invoke[*services.ServiceUser](container)
	if err != nil {
		return err
	}
	serviceRanking, err := do.Invoke[*services.ServiceRanking](container)
	if err != nil {
		return err
	}
	serviceStats, err := do.Invoke[*services.ServiceStats](container)
	if err != nil {
		return err
	}

	pref := tele.Settings{
		Token:  vs["BOT_TOKEN"],
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return err
	}

	b.Handle("/start", func(c tele.Context) error {
		return c.Send(textStart)
	})

	b.Handle("/checkin", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		sender := c.Sender()
		result, err := serviceAttendance.CheckIn(ctx, sender.ID, sender.Username)
		if errors.Is(err, services.ErrAlreadyCheckedIn) {
			return c.Reply(textAlreadyCheckedIn)
		}
		if err != nil {
			log.Println("check-in:", err)
			return c.Reply("Something went wrong, please try again later.")
		}

		return c.Reply(checkInText(result))
	})

	b.Handle("/me", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		info, err := serviceUser.GetUserInfo(ctx, c.Sender().ID)
		if errors.Is(err, services.ErrUserNotRegistered) {
			return c.Reply(textNotRegistered)
		}
		if err != nil {
			log.Println("user info:", err)
			return c.Reply("Something went wrong, please try again later.")
		}

		return c.Reply(profileText(info))
	})

	b.Handle("/rank", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rankingType := models.RankingByScore
		if args := c.Args(); len(args) > 0 {
			parsed, ok := models.ParseRankingType(args[0])
			if !ok {
				return c.Reply("Unknown ranking. Try: score, chat_count, jackpot, consecutive_days")
			}
			rankingType = parsed
		}

		result, err := serviceRanking.GetRanking(ctx, rankingType, 0)
		if err != nil {
			log.Println("ranking:", err)
			return c.Reply("Something went wrong, please try again later.")
		}

		return c.Send(rankingText(result))
	})

	b.Handle("/stats", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		stats, err := serviceStats.GetDailyStats(ctx, time.Now())
		if err != nil {
			log.Println("daily stats:", err)
			return c.Reply("Something went wrong, please try again later.")
		}

		return c.Send(dailyStatsText(stats))
	})

	b.Handle("/month", func(c tele.Context) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		now := time.Now()
		year, month := now.Year(), int(now.Month())
		if args := c.Args(); len(args) >= 2 {
			year, _ = strconv.Atoi(args[0])
			month, _ = strconv.Atoi(args[1])
			if year == 0 || month < 1 || month > 12 {
				return c.Reply("Usage: /month [year month]")
			}
		}

		stats, err := serviceStats.GetMonthlyStats(ctx, year, month)
		if err != nil {
			log.Println("monthly stats:", err)
			return c.Reply("Something went wrong, please try again later.")
		}

		return c.Send(monthlyStatsText(stats))
	})

	// every plain group message is a scoring chance
	b.Handle(tele.OnText, func(c tele.Context) error {
		msg := c.Message()
		if msg == nil || msg.Private() {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		result, err := serviceChatActivity.ProcessMessage(ctx, msg.Sender.ID, int64(msg.ID))
		if err != nil {
			log.Println("process message:", err)
			return nil
		}
		if result == nil || !result.IsJackpot {
			return nil
		}

		name := displayName(msg.Sender.Username, msg.Sender.ID)
		return c.Send(jackpotText(name, result.Activity.Multiplier, result.Activity.FinalScore))
	})

	log.Println("bot started")
	b.Start()

	return nil
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

	do.ProvideNamed(injector, "redis-cache", func(i *do.Injector) (redis.UniversalClient, error) {
		clusterRedisURL := os.Getenv("CLUSTER_REDIS_CACHE")
		if clusterRedisURL != "" {
			clusterOpts, err := redis.ParseClusterURL(clusterRedisURL)
			if err != nil {
				return nil, err
			}
			return redis.NewClusterClient(clusterOpts), nil
		}
		return db.InitRedis(&db.RedisConfig{
			URL: os.Getenv("REDIS_CACHE"),
		})
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		dbRedis, err := do.InvokeNamed[redis.UniversalClient](i, "redis-cache")
		if err != nil {
			return nil, err
		}

		return caching.NewCacheRedis(dbRedis, false)
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

	do.Provide(injector, func(i *do.Injector) (*services.ServiceUser, error) {
		return services.NewServiceUser(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceAttendance, error) {
		return services.NewServiceAttendance(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceChatActivity, error) {
		return services.NewServiceChatActivity(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceRanking, error) {
		return services.NewServiceRanking(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*services.ServiceStats, error) {
		return services.NewServiceStats(injector)
	})

	return injector
}

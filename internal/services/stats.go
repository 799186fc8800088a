package services

import (
	"context"
	"log"
	"time"

	"streakbot/internal/datastore/redis_store"
	"streakbot/internal/interfaces"
	"streakbot/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
)

type ServiceStats struct {
	container *do.Injector
	store     interfaces.Store
	redisDB   redis.UniversalClient
}

func NewServiceStats(container *do.Injector) (*ServiceStats, error) {
	store, err := do.Invoke[interfaces.Store](container)
	if err != nil {
		return nil, err
	}

	// snapshots are an optional layer; stats work without redis
	redisDB, _ := do.InvokeNamed[redis.UniversalClient](container, "redis-db")

	return &ServiceStats{container, store, redisDB}, nil
}

// GetDailyStats aggregates one calendar date. Top users come from the
// global score ranking, not the day's activity.
func (service *ServiceStats) GetDailyStats(ctx context.Context, date time.Time) (*models.DailyStats, error) {
	day := models.DateOf(date)

	if service.redisDB != nil {
		snapshot, err := redis_store.GetDailyStatsSnapshot(ctx, service.redisDB, day)
		if err != nil {
			log.Println("daily stats snapshot:", err)
		}
		if snapshot != nil {
			return snapshot, nil
		}
	}

	stats, err := service.buildDailyStats(ctx, day)
	if err != nil {
		return nil, err
	}

	if service.redisDB != nil {
		// nolint:errcheck
		redis_store.SetDailyStatsSnapshot(ctx, service.redisDB, stats, STATS_SNAPSHOT_TTL)
	}

	return stats, nil
}

func (service *ServiceStats) buildDailyStats(ctx context.Context, day time.Time) (*models.DailyStats, error) {
	from, to := day, day.AddDate(0, 0, 1)

	checkInCount, err := service.store.GetAttendanceCount(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary, err := service.store.GetActivitySummary(ctx, from, to)
	if err != nil {
		return nil, err
	}

	topUsers, err := service.topUsers(ctx, DAILY_TOP_USERS)
	if err != nil {
		return nil, err
	}

	return &models.DailyStats{
		Date:          day,
		TotalUsers:    summary.UserCount,
		CheckInCount:  checkInCount,
		TotalMessages: summary.MessageCount,
		TotalScore:    summary.TotalScore,
		JackpotCount:  summary.JackpotCount,
		TopUsers:      topUsers,
	}, nil
}

// GetMonthlyStats aggregates a (year, month) window and finds the
// single busiest calendar date; with no activity in the month the
// busiest date is reported as absent.
func (service *ServiceStats) GetMonthlyStats(ctx context.Context, year, month int) (*models.MonthlyStats, error) {
	if service.redisDB != nil {
		snapshot, err := redis_store.GetMonthlyStatsSnapshot(ctx, service.redisDB, year, month)
		if err != nil {
			log.Println("monthly stats snapshot:", err)
		}
		if snapshot != nil {
			return snapshot, nil
		}
	}

	stats, err := service.buildMonthlyStats(ctx, year, month)
	if err != nil {
		return nil, err
	}

	if service.redisDB != nil {
		// nolint:errcheck
		redis_store.SetMonthlyStatsSnapshot(ctx, service.redisDB, stats, STATS_SNAPSHOT_TTL)
	}

	return stats, nil
}

func (service *ServiceStats) buildMonthlyStats(ctx context.Context, year, month int) (*models.MonthlyStats, error) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)

	checkInCount, err := service.store.GetAttendanceCount(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary, err := service.store.GetActivitySummary(ctx, from, to)
	if err != nil {
		return nil, err
	}

	mostActive, err := service.store.GetMostActiveDate(ctx, from, to)
	if err != nil {
		return nil, err
	}

	topUsers, err := service.topUsers(ctx, MONTHLY_TOP_USERS)
	if err != nil {
		return nil, err
	}

	stats := &models.MonthlyStats{
		Year:          year,
		Month:         month,
		TotalUsers:    summary.UserCount,
		CheckInCount:  checkInCount,
		TotalMessages: summary.MessageCount,
		TotalScore:    summary.TotalScore,
		JackpotCount:  summary.JackpotCount,
		TopUsers:      topUsers,
	}
	if mostActive != nil {
		stats.MostActiveDate = &mostActive.Day
		stats.MostActiveCount = mostActive.Count
	}

	return stats, nil
}

func (service *ServiceStats) topUsers(ctx context.Context, limit int) ([]models.UserStats, error) {
	users, err := service.store.GetRankingByScore(ctx, limit)
	if err != nil {
		return nil, err
	}

	topUsers := make([]models.UserStats, 0, len(users))
	for _, user := range users {
		topUsers = append(topUsers, models.NewUserStats(user))
	}
	return topUsers, nil
}

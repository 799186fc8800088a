package redis_store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"streakbot/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

func dbKeyDailyStats(date time.Time) string {
	return fmt.Sprintf("stats:daily:%s", date.Format("2006-01-02"))
}

func dbKeyMonthlyStats(year, month int) string {
	return fmt.Sprintf("stats:monthly:%d-%02d", year, month)
}

// GetDailyStatsSnapshot returns nil on a cache miss.
func GetDailyStatsSnapshot(ctx context.Context, cmd redis.Cmdable, date time.Time) (*models.DailyStats, error) {
	payload, err := cmd.Get(ctx, dbKeyDailyStats(date)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats models.DailyStats
	if err := msgpack.Unmarshal(payload, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func SetDailyStatsSnapshot(ctx context.Context, cmd redis.Cmdable, stats *models.DailyStats, ttl time.Duration) error {
	payload, err := msgpack.Marshal(stats)
	if err != nil {
		return err
	}
	return cmd.Set(ctx, dbKeyDailyStats(stats.Date), payload, ttl).Err()
}

func GetMonthlyStatsSnapshot(ctx context.Context, cmd redis.Cmdable, year, month int) (*models.MonthlyStats, error) {
	payload, err := cmd.Get(ctx, dbKeyMonthlyStats(year, month)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats models.MonthlyStats
	if err := msgpack.Unmarshal(payload, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func SetMonthlyStatsSnapshot(ctx context.Context, cmd redis.Cmdable, stats *models.MonthlyStats, ttl time.Duration) error {
	payload, err := msgpack.Marshal(stats)
	if err != nil {
		return err
	}
	return cmd.Set(ctx, dbKeyMonthlyStats(stats.Year, stats.Month), payload, ttl).Err()
}

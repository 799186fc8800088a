package interfaces

import (
	"context"
	"errors"
	"time"

	"streakbot/internal/models"

	"github.com/go-redis/redis_rate/v10"
)

// ErrDuplicateAttendance is returned by CreateAttendance when the
// (user, date) pair already has a row. The attendance table carries a
// unique index, so this is the authoritative same-day guard even under
// concurrent check-ins.
var ErrDuplicateAttendance = errors.New("attendance already recorded for this date")

// Store is the persistence port the use cases run against. The bun
// implementation lives in internal/datastore; tests use an in-memory
// fake. Lookup methods return (nil, nil) when the record is absent.
type Store interface {
	GetUserByExternalID(ctx context.Context, externalID int64) (*models.User, error)
	CreateUser(ctx context.Context, externalID int64, username string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) (*models.User, error)

	GetRankingByScore(ctx context.Context, limit int) ([]*models.User, error)
	GetRankingByChatCount(ctx context.Context, limit int) ([]*models.User, error)
	GetRankingByJackpot(ctx context.Context, limit int) ([]*models.User, error)
	GetRankingByConsecutiveDays(ctx context.Context, limit int) ([]*models.User, error)

	CreateAttendance(ctx context.Context, userID int64, date time.Time, score, consecutiveDays int) (*models.Attendance, error)
	GetAttendanceCount(ctx context.Context, from, to time.Time) (int, error)
	GetAttendancesByUser(ctx context.Context, userID int64, limit int) ([]*models.Attendance, error)

	CreateChatActivity(ctx context.Context, activity *models.ChatActivity) (*models.ChatActivity, error)
	GetActivitySummary(ctx context.Context, from, to time.Time) (*models.ActivitySummary, error)
	GetMostActiveDate(ctx context.Context, from, to time.Time) (*models.DayCount, error)
	GetJackpotsByUser(ctx context.Context, userID int64, limit int) ([]*models.ChatActivity, error)

	GetScoreConfig(ctx context.Context) (*models.ScoreConfig, error)
	UpdateScoreConfig(ctx context.Context, cfg *models.ScoreConfig) (*models.ScoreConfig, error)

	// InTx runs fn against a transactional view of the store; every
	// write inside either commits together or not at all.
	InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}

type Limiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) error
}

package datastore

import (
	"context"
	"time"

	"streakbot/internal/interfaces"
	"streakbot/internal/models"

	"github.com/uptrace/bun"
)

// Store adapts the package-level query functions to the storage port.
type Store struct {
	db  *bun.DB
	idb bun.IDB
}

var _ interfaces.Store = (*Store)(nil)

func NewStore(db *bun.DB) *Store {
	return &Store{db: db, idb: db}
}

func (store *Store) GetUserByExternalID(ctx context.Context, externalID int64) (*models.User, error) {
	return FindUserByID(ctx, store.idb, externalID)
}

func (store *Store) CreateUser(ctx context.Context, externalID int64, username string) (*models.User, error) {
	return CreateUser(ctx, store.idb, externalID, username)
}

func (store *Store) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	return EditUser(ctx, store.idb, user)
}

func (store *Store) GetRankingByScore(ctx context.Context, limit int) ([]*models.User, error) {
	return GetRankingByScore(ctx, store.idb, limit)
}

func (store *Store) GetRankingByChatCount(ctx context.Context, limit int) ([]*models.User, error) {
	return GetRankingByChatCount(ctx, store.idb, limit)
}

func (store *Store) GetRankingByJackpot(ctx context.Context, limit int) ([]*models.User, error) {
	return GetRankingByJackpot(ctx, store.idb, limit)
}

func (store *Store) GetRankingByConsecutiveDays(ctx context.Context, limit int) ([]*models.User, error) {
	return GetRankingByConsecutiveDays(ctx, store.idb, limit)
}

func (store *Store) CreateAttendance(ctx context.Context, userID int64, date time.Time, score, consecutiveDays int) (*models.Attendance, error) {
	return CreateAttendance(ctx, store.idb, userID, date, score, consecutiveDays)
}

func (store *Store) GetAttendanceCount(ctx context.Context, from, to time.Time) (int, error) {
	return CountAttendances(ctx, store.idb, from, to)
}

func (store *Store) GetAttendancesByUser(ctx context.Context, userID int64, limit int) ([]*models.Attendance, error) {
	return GetAttendancesByUser(ctx, store.idb, userID, limit)
}

func (store *Store) CreateChatActivity(ctx context.Context, activity *models.ChatActivity) (*models.ChatActivity, error) {
	return CreateChatActivity(ctx, store.idb, activity)
}

func (store *Store) GetActivitySummary(ctx context.Context, from, to time.Time) (*models.ActivitySummary, error) {
	return GetActivitySummary(ctx, store.idb, from, to)
}

func (store *Store) GetMostActiveDate(ctx context.Context, from, to time.Time) (*models.DayCount, error) {
	return GetMostActiveDate(ctx, store.idb, from, to)
}

func (store *Store) GetJackpotsByUser(ctx context.Context, userID int64, limit int) ([]*models.ChatActivity, error) {
	return GetJackpotsByUser(ctx, store.idb, userID, limit)
}

func (store *Store) GetScoreConfig(ctx context.Context) (*models.ScoreConfig, error) {
	return GetScoreConfig(ctx, store.idb)
}

func (store *Store) UpdateScoreConfig(ctx context.Context, cfg *models.ScoreConfig) (*models.ScoreConfig, error) {
	return UpdateScoreConfig(ctx, store.idb, cfg)
}

func (store *Store) InTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Store) error) error {
	if store.db == nil {
		// already inside a transaction; run against the same view
		return fn(ctx, store)
	}
	return store.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, &Store{idb: tx})
	})
}

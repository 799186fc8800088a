package datastore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"streakbot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableUser(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.User)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_user_total_score").IfNotExists().Column("total_score").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.User)(nil)).Index("index_user_chat_count").IfNotExists().Column("chat_count").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

// FindUserByID returns nil without error when the user is not registered.
func FindUserByID(ctx context.Context, db bun.IDB, userID int64) (*models.User, error) {
	var user models.User
	err := db.NewSelect().Model(&user).Where("id = ?", userID).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func CreateUser(ctx context.Context, db bun.IDB, userID int64, username string) (*models.User, error) {
	now := time.Now()
	user := &models.User{
		ID:        userID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// EditUser replaces the whole mutable row.
func EditUser(ctx context.Context, db bun.IDB, user *models.User) (*models.User, error) {
	_, err := db.NewUpdate().Model(user).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Ranking queries exclude users with a zero value in the ranked
// dimension; secondary keys make the order deterministic.

func GetRankingByScore(ctx context.Context, db bun.IDB, limit int) ([]*models.User, error) {
	var users []*models.User
	err := db.NewSelect().Model(&users).
		Where("total_score > 0").
		Order("total_score DESC").
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func GetRankingByChatCount(ctx context.Context, db bun.IDB, limit int) ([]*models.User, error) {
	var users []*models.User
	err := db.NewSelect().Model(&users).
		Where("chat_count > 0").
		Order("chat_count DESC").
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func GetRankingByJackpot(ctx context.Context, db bun.IDB, limit int) ([]*models.User, error) {
	var users []*models.User
	err := db.NewSelect().Model(&users).
		Where("jackpot_count > 0").
		Order("jackpot_count DESC").
		Order("max_jackpot DESC").
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func GetRankingByConsecutiveDays(ctx context.Context, db bun.IDB, limit int) ([]*models.User, error) {
	var users []*models.User
	err := db.NewSelect().Model(&users).
		Where("consecutive_days > 0").
		Order("consecutive_days DESC").
		Order("total_attendance DESC").
		Order("id ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return users, nil
}

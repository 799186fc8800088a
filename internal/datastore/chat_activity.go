package datastore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"streakbot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableChatActivity(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ChatActivity)(nil)).IfNotExists().Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ChatActivity)(nil)).Index("index_chat_activity_user_id").IfNotExists().Column("user_id").Exec(ctx)
	if err != nil {
		return err
	}

	_, err = db.NewCreateIndex().Model((*models.ChatActivity)(nil)).Index("index_chat_activity_created_at").IfNotExists().Column("created_at").Exec(ctx)
	if err != nil {
		return err
	}

	return nil
}

func CreateChatActivity(ctx context.Context, db bun.IDB, activity *models.ChatActivity) (*models.ChatActivity, error) {
	_, err := db.NewInsert().Model(activity).Exec(ctx)
	if err != nil {
		return nil, err
	}

	return activity, nil
}

func GetActivitySummary(ctx context.Context, db bun.IDB, from, to time.Time) (*models.ActivitySummary, error) {
	var summary models.ActivitySummary
	err := db.NewSelect().Model((*models.ChatActivity)(nil)).
		ColumnExpr("count(*) AS message_count").
		ColumnExpr("coalesce(sum(final_score), 0) AS total_score").
		ColumnExpr("count(*) FILTER (WHERE is_jackpot) AS jackpot_count").
		ColumnExpr("count(DISTINCT user_id) AS user_count").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(ctx, &summary)
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// GetMostActiveDate returns nil when the window has no activity.
func GetMostActiveDate(ctx context.Context, db bun.IDB, from, to time.Time) (*models.DayCount, error) {
	var day models.DayCount
	err := db.NewSelect().Model((*models.ChatActivity)(nil)).
		ColumnExpr("created_at::date AS day").
		ColumnExpr("count(*) AS count").
		Where("created_at >= ? AND created_at < ?", from, to).
		GroupExpr("created_at::date").
		OrderExpr("count(*) DESC").
		Limit(1).
		Scan(ctx, &day)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &day, nil
}

func GetJackpotsByUser(ctx context.Context, db bun.IDB, userID int64, limit int) ([]*models.ChatActivity, error) {
	var activities []*models.ChatActivity
	err := db.NewSelect().Model(&activities).
		Where("user_id = ?", userID).
		Where("is_jackpot").
		Order("final_score DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return activities, nil
}

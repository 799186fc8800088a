package datastore

import (
	"context"
	"database/sql"
	"errors"

	"streakbot/internal/models"

	"github.com/uptrace/bun"
)

func CreateTableScoreConfig(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*models.ScoreConfig)(nil)).IfNotExists().Exec(ctx)
	return err
}

// GetScoreConfig reads the singleton config row, materializing the
// default one on first access.
func GetScoreConfig(ctx context.Context, db bun.IDB) (*models.ScoreConfig, error) {
	var cfg models.ScoreConfig
	err := db.NewSelect().Model(&cfg).Where("id = 1").Scan(ctx)
	if err == nil {
		return &cfg, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	fallback := models.DefaultScoreConfig()
	// a concurrent first reader may have inserted already
	_, err = db.NewInsert().Model(fallback).On("CONFLICT (id) DO NOTHING").Exec(ctx)
	if err != nil {
		return nil, err
	}

	err = db.NewSelect().Model(&cfg).Where("id = 1").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func UpdateScoreConfig(ctx context.Context, db bun.IDB, cfg *models.ScoreConfig) (*models.ScoreConfig, error) {
	_, err := db.NewUpdate().Model(cfg).WherePK().Exec(ctx)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

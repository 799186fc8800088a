package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// ScoreConfig is a single-row table (id 1) holding the scoring
// tunables. A default row is materialized on first read if none is
// persisted.
type ScoreConfig struct {
	bun.BaseModel       `bun:"table:score_config"`
	ID                  int64     `bun:"id,pk" json:"id"`
	AttendanceScore     int       `bun:"attendance_score" json:"attendance_score"`
	ChatScoreMin        int       `bun:"chat_score_min" json:"chat_score_min"`
	ChatScoreMax        int       `bun:"chat_score_max" json:"chat_score_max"`
	JackpotChance       float64   `bun:"jackpot_chance" json:"jackpot_chance"`
	MultiplierMin       int       `bun:"multiplier_min" json:"multiplier_min"`
	MultiplierMax       int       `bun:"multiplier_max" json:"multiplier_max"`
	MaxConsecutiveBonus int       `bun:"max_consecutive_bonus" json:"max_consecutive_bonus"`
	UpdatedAt           time.Time `bun:"updated_at" json:"updated_at"`
}

func DefaultScoreConfig() *ScoreConfig {
	return &ScoreConfig{
		ID:                  1,
		AttendanceScore:     10,
		ChatScoreMin:        1,
		ChatScoreMax:        6,
		JackpotChance:       0.05,
		MultiplierMin:       1,
		MultiplierMax:       7,
		MaxConsecutiveBonus: 7,
		UpdatedAt:           time.Now(),
	}
}

func (cfg *ScoreConfig) Validate() error {
	if cfg.AttendanceScore < 0 {
		return errors.New("attendance_score must not be negative")
	}
	if cfg.ChatScoreMin < 0 || cfg.ChatScoreMax < cfg.ChatScoreMin {
		return errors.New("chat score range is invalid")
	}
	if cfg.JackpotChance < 0 || cfg.JackpotChance > 1 {
		return errors.New("jackpot_chance must be within [0, 1]")
	}
	if cfg.MultiplierMin < 1 || cfg.MultiplierMax < cfg.MultiplierMin {
		return errors.New("multiplier range is invalid")
	}
	if cfg.MaxConsecutiveBonus < 0 {
		return errors.New("max_consecutive_bonus must not be negative")
	}
	return nil
}

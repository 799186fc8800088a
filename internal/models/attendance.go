package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Attendance struct {
	bun.BaseModel   `bun:"table:attendance"`
	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID          int64     `bun:"user_id" json:"user_id"`
	Date            time.Time `bun:"date" json:"date"`
	Score           int       `bun:"score" json:"score"`
	ConsecutiveDays int       `bun:"consecutive_days" json:"consecutive_days"`
	CreatedAt       time.Time `bun:"created_at,default:current_timestamp" json:"created_at"`
}

// AttendanceScore is the daily award: the base score plus a streak
// bonus of one point per consecutive day, capped at maxBonus.
func AttendanceScore(base, consecutiveDays, maxBonus int) int {
	bonus := consecutiveDays
	if bonus > maxBonus {
		bonus = maxBonus
	}
	return base + bonus
}

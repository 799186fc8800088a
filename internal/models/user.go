package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel   `bun:"table:user"`
	ID              int64      `bun:"id,pk" json:"id"`
	Username        string     `bun:"username" json:"username"`
	TotalScore      int        `bun:"total_score" json:"total_score"`
	ChatCount       int        `bun:"chat_count" json:"chat_count"`
	JackpotCount    int        `bun:"jackpot_count" json:"jackpot_count"`
	MaxJackpot      int        `bun:"max_jackpot" json:"max_jackpot"`
	ConsecutiveDays int        `bun:"consecutive_days" json:"consecutive_days"`
	TotalAttendance int        `bun:"total_attendance" json:"total_attendance"`
	LastCheckIn     *time.Time `bun:"last_checkin" json:"last_checkin"`
	CreatedAt       time.Time  `bun:"created_at,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time  `bun:"updated_at" json:"updated_at"`

	IsNewUser bool `bun:"-" json:"is_new_user"`
}

// DateOf truncates a timestamp to its calendar date, keeping the location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBetween(from, to time.Time) int {
	hours := DateOf(to).Sub(DateOf(from)).Hours()
	// round instead of divide so a DST-shortened or -lengthened day
	// still counts as one day
	return int(hours/24 + 0.5)
}

// CanCheckInToday reports whether the user has no attendance recorded
// for the calendar date of now.
func (user *User) CanCheckInToday(now time.Time) bool {
	if user.LastCheckIn == nil {
		return true
	}
	return DateOf(*user.LastCheckIn).Before(DateOf(now))
}

// NextConsecutiveDays computes the streak length a check-in at now
// would produce. A check-in the day after the last one extends the
// streak; any other gap starts over at 1. Same-day repeats never reach
// this point, CanCheckInToday rejects them first.
func (user *User) NextConsecutiveDays(now time.Time) int {
	if user.LastCheckIn == nil {
		return 1
	}
	if daysBetween(*user.LastCheckIn, now) == 1 {
		return user.ConsecutiveDays + 1
	}
	return 1
}

// ApplyCheckIn returns a copy of the user with the attendance award
// folded in. The receiver is left untouched so a failed write cannot
// leak half-applied state.
func (user *User) ApplyCheckIn(score, consecutiveDays int, now time.Time) *User {
	updated := *user
	updated.TotalScore += score
	updated.ConsecutiveDays = consecutiveDays
	updated.TotalAttendance++
	updated.LastCheckIn = &now
	updated.UpdatedAt = now
	return &updated
}

// ApplyChatActivity returns a copy of the user credited with a scored
// message.
func (user *User) ApplyChatActivity(activity *ChatActivity, now time.Time) *User {
	updated := *user
	updated.TotalScore += activity.FinalScore
	updated.ChatCount++
	if activity.IsJackpot {
		updated.JackpotCount++
		if activity.FinalScore > updated.MaxJackpot {
			updated.MaxJackpot = activity.FinalScore
		}
	}
	updated.UpdatedAt = now
	return &updated
}

func (user *User) AverageScorePerChat() float64 {
	if user.ChatCount == 0 {
		return 0
	}
	return float64(user.TotalScore) / float64(user.ChatCount)
}

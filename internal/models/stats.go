package models

import "time"

type RankingType string

const (
	RankingByScore           RankingType = "score"
	RankingByChatCount       RankingType = "chat_count"
	RankingByJackpot         RankingType = "jackpot"
	RankingByConsecutiveDays RankingType = "consecutive_days"
)

func ParseRankingType(s string) (RankingType, bool) {
	switch RankingType(s) {
	case RankingByScore, RankingByChatCount, RankingByJackpot, RankingByConsecutiveDays:
		return RankingType(s), true
	}
	return "", false
}

type RankingResult struct {
	Type  RankingType `json:"type"`
	Users []*User     `json:"users"`
}

type UserStats struct {
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	TotalScore int    `json:"total_score"`
	ChatCount  int    `json:"chat_count"`
}

func NewUserStats(user *User) UserStats {
	return UserStats{
		UserID:     user.ID,
		Username:   user.Username,
		TotalScore: user.TotalScore,
		ChatCount:  user.ChatCount,
	}
}

// ActivitySummary aggregates chat activity over a time window.
type ActivitySummary struct {
	MessageCount int `bun:"message_count" json:"message_count"`
	TotalScore   int `bun:"total_score" json:"total_score"`
	JackpotCount int `bun:"jackpot_count" json:"jackpot_count"`
	UserCount    int `bun:"user_count" json:"user_count"`
}

type DayCount struct {
	Day   time.Time `bun:"day" json:"day"`
	Count int       `bun:"count" json:"count"`
}

type DailyStats struct {
	Date          time.Time   `json:"date"`
	TotalUsers    int         `json:"total_users"`
	CheckInCount  int         `json:"check_in_count"`
	TotalMessages int         `json:"total_messages"`
	TotalScore    int         `json:"total_score"`
	JackpotCount  int         `json:"jackpot_count"`
	TopUsers      []UserStats `json:"top_users"`
}

type MonthlyStats struct {
	Year            int         `json:"year"`
	Month           int         `json:"month"`
	TotalUsers      int         `json:"total_users"`
	CheckInCount    int         `json:"check_in_count"`
	TotalMessages   int         `json:"total_messages"`
	TotalScore      int         `json:"total_score"`
	JackpotCount    int         `json:"jackpot_count"`
	MostActiveDate  *time.Time  `json:"most_active_date"`
	MostActiveCount int         `json:"most_active_count"`
	TopUsers        []UserStats `json:"top_users"`
}

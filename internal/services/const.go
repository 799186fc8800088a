package services

import (
	"errors"
	"fmt"
	"time"
)

var ErrAlreadyCheckedIn = errors.New("already checked in today")
var ErrUserNotRegistered = errors.New("user not registered")
var ErrInvalidScoreConfig = errors.New("invalid score config")
var ErrCheckInLock = errors.New("check-in locked")

const (
	RANKING_DEFAULT_LIMIT = 10

	DAILY_TOP_USERS   = 3
	MONTHLY_TOP_USERS = 5

	RECENT_ATTENDANCE_LIMIT = 7
	TOP_JACKPOT_LIMIT       = 5

	CACHE_TTL_1_MIN  = 1 * time.Minute
	CACHE_TTL_5_MINS = 5 * time.Minute

	STATS_SNAPSHOT_TTL = 1 * time.Minute
)

func LockKeyUserCheckIn(userID int64) string {
	return fmt.Sprintf("lock:check-in:%d", userID)
}

// db
func DBKeyUser(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func DBKeyScoreConfig() string {
	return "score_config"
}

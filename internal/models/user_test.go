package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayAt(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
}

func TestCanCheckInToday(t *testing.T) {
	now := dayAt(2024, time.March, 10, 9)

	user := &User{}
	assert.True(t, user.CanCheckInToday(now), "never checked in")

	sameDay := dayAt(2024, time.March, 10, 0)
	user.LastCheckIn = &sameDay
	assert.False(t, user.CanCheckInToday(now), "already checked in this date")

	lateYesterday := dayAt(2024, time.March, 9, 23)
	user.LastCheckIn = &lateYesterday
	assert.True(t, user.CanCheckInToday(now), "late yesterday is still yesterday")
}

func TestNextConsecutiveDays(t *testing.T) {
	now := dayAt(2024, time.March, 10, 9)

	user := &User{ConsecutiveDays: 4}
	assert.Equal(t, 1, user.NextConsecutiveDays(now), "no previous check-in starts at 1")

	yesterday := dayAt(2024, time.March, 9, 22)
	user.LastCheckIn = &yesterday
	assert.Equal(t, 5, user.NextConsecutiveDays(now), "one day gap extends the streak")

	twoDaysAgo := dayAt(2024, time.March, 8, 9)
	user.LastCheckIn = &twoDaysAgo
	assert.Equal(t, 1, user.NextConsecutiveDays(now), "a missed day resets the streak")
}

func TestNextConsecutiveDaysAcrossMonthBoundary(t *testing.T) {
	lastOfFeb := dayAt(2024, time.February, 29, 12)
	user := &User{ConsecutiveDays: 10, LastCheckIn: &lastOfFeb}

	firstOfMarch := dayAt(2024, time.March, 1, 8)
	assert.Equal(t, 11, user.NextConsecutiveDays(firstOfMarch))
}

func TestApplyCheckInReturnsCopy(t *testing.T) {
	now := dayAt(2024, time.March, 10, 9)
	user := &User{ID: 1, TotalScore: 100, ConsecutiveDays: 2, TotalAttendance: 2}

	updated := user.ApplyCheckIn(12, 3, now)

	require.NotSame(t, user, updated)
	assert.Equal(t, 112, updated.TotalScore)
	assert.Equal(t, 3, updated.ConsecutiveDays)
	assert.Equal(t, 3, updated.TotalAttendance)
	require.NotNil(t, updated.LastCheckIn)
	assert.Equal(t, now, *updated.LastCheckIn)

	// receiver untouched
	assert.Equal(t, 100, user.TotalScore)
	assert.Equal(t, 2, user.ConsecutiveDays)
	assert.Nil(t, user.LastCheckIn)
}

func TestApplyChatActivity(t *testing.T) {
	now := dayAt(2024, time.March, 10, 9)
	user := &User{ID: 1, TotalScore: 50, ChatCount: 9, JackpotCount: 1, MaxJackpot: 12}

	plain := &ChatActivity{BaseScore: 4, Multiplier: 1, FinalScore: 4}
	updated := user.ApplyChatActivity(plain, now)
	assert.Equal(t, 54, updated.TotalScore)
	assert.Equal(t, 10, updated.ChatCount)
	assert.Equal(t, 1, updated.JackpotCount)
	assert.Equal(t, 12, updated.MaxJackpot)

	jackpot := &ChatActivity{BaseScore: 5, IsJackpot: true, Multiplier: 6, FinalScore: 30}
	updated = updated.ApplyChatActivity(jackpot, now)
	assert.Equal(t, 84, updated.TotalScore)
	assert.Equal(t, 2, updated.JackpotCount)
	assert.Equal(t, 30, updated.MaxJackpot, "bigger jackpot replaces the record")

	small := &ChatActivity{BaseScore: 2, IsJackpot: true, Multiplier: 2, FinalScore: 4}
	updated = updated.ApplyChatActivity(small, now)
	assert.Equal(t, 3, updated.JackpotCount)
	assert.Equal(t, 30, updated.MaxJackpot, "smaller jackpot keeps the record")

	// receiver untouched throughout
	assert.Equal(t, 50, user.TotalScore)
	assert.Equal(t, 9, user.ChatCount)
}

func TestAverageScorePerChat(t *testing.T) {
	user := &User{}
	assert.Zero(t, user.AverageScorePerChat())

	user = &User{TotalScore: 45, ChatCount: 10}
	assert.InDelta(t, 4.5, user.AverageScorePerChat(), 1e-9)
}

package services

import (
	"context"
	"testing"
	"time"

	"streakbot/internal/models"

	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckInNewUser(t *testing.T) {
	store := newFakeStore()
	container := newTestContainer(t, store)
	service := do.MustInvoke[*ServiceAttendance](container)
	ctx := context.Background()

	result, err := service.CheckIn(ctx, 100, "alice")
	require.NoError(t, err)

	assert.True(t, result.IsNewUser)
	assert.Equal(t, 1, result.ConsecutiveDays)
	// base 10 plus 1 streak bonus
	assert.Equal(t, 11, result.Score)
	assert.Equal(t, 11, result.User.TotalScore)
	assert.Equal(t, 1, result.User.TotalAttendance)
	require.NotNil(t, result.Attendance)
	assert.Equal(t, int64(100), result.Attendance.UserID)

	stored, err := store.GetUserByExternalID(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, 11, stored.TotalScore)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	store := newFakeStore()
	container := newTestContainer(t, store)
	service := do.MustInvoke[*ServiceAttendance](container)
	ctx := context.Background()

	_, err := service.CheckIn(ctx, 100, "alice")
	require.NoError(t, err)

	_, err = service.CheckIn(ctx, 100, "alice")
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	stored, err := store.GetUserByExternalID(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 11, stored.TotalScore, "second attempt must not award points")
	assert.Equal(t, 1, stored.TotalAttendance)
}

func TestCheckInExtendsStreak(t *testing.T) {
	store := newFakeStore()
	yesterday := time.Now().AddDate(0, 0, -1)
	store.seedUser(&models.User{
		ID:              100,
		Username:        "alice",
		TotalScore:      11,
		ConsecutiveDays: 1,
		TotalAttendance: 1,
		LastCheckIn:     &yesterday,
	})

	container := newTestContainer(t, store)
	service := do.MustInvoke[*ServiceAttendance](container)

	result, err := service.CheckIn(context.Background(), 100, "alice")
	require.NoError(t, err)

	assert.False(t, result.IsNewUser)
	assert.Equal(t, 2, result.ConsecutiveDays)
	assert.Equal(t, 12, result.Score, "base 10 plus 2 streak bonus")
	assert.Equal(t, 23, result.User.TotalScore)
}

func TestCheckInGapResetsStreak(t *testing.T) {
	store := newFakeStore()
	threeDaysAgo := time.Now().AddDate(0, 0, -3)
	store.seedUser(&models.User{
		ID:              100,
		Username:        "alice",
		TotalScore:      60,
		ConsecutiveDays: 5,
		TotalAttendance: 5,
		LastCheckIn:     &threeDaysAgo,
	})

	container := newTestContainer(t, store)
	service := do.MustInvoke[*ServiceAttendance](container)

	result, err := service.CheckIn(context.Background(), 100, "alice")
	require.NoError(t, err)

	assert.Equal(t, 1, result.ConsecutiveDays, "missed days reset the streak")
	assert.Equal(t, 11, result.Score)
}

func TestCheckInStreakBonusSaturates(t *testing.T) {
	store := newFakeStore()
	yesterday := time.Now().AddDate(0, 0, -1)
	store.seedUser(&models.User{
		ID:              100,
		Username:        "alice",
		TotalScore:      500,
		ConsecutiveDays: 30,
		TotalAttendance: 40,
		LastCheckIn:     &yesterday,
	})

	container := newTestContainer(t, store)
	service := do.MustInvoke[*ServiceAttendance](container)

	result, err := service.CheckIn(context.Background(), 100, "alice")
	require.NoError(t, err)

	assert.Equal(t, 31, result.ConsecutiveDays)
	assert.Equal(t, 17, result.Score, "bonus capped at 7")
}

func TestCheckInDuplicateRowRollsBack(t *testing.T) {
	store := newFakeStore()
	store.seedUser(&models.User{ID: 100, Username: "alice", TotalScore: 42})

	// a concurrent check-in already wrote today's row but the user
	// update hasn't landed yet
	_, err := store.CreateAttendance(context.Background(), 100, time.Now(), 11, 1)
	require.NoError(t, err)

	container := newTestContainer(t, store)
	service := do.MustInvoke[*ServiceAttendance](container)

	_, err = service.CheckIn(context.Background(), 100, "alice")
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	stored, err := store.GetUserByExternalID(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 42, stored.TotalScore, "failed check-in must not change the user")
	assert.Equal(t, 0, stored.TotalAttendance)
}

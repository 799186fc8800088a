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

func TestGetDailyStats(t *testing.T) {
	store := newFakeStore()
	store.seedUser(&models.User{ID: 1, Username: "alice", TotalScore: 100})
	store.seedUser(&models.User{ID: 2, Username: "bob", TotalScore: 50})

	ctx := context.Background()
	now := time.Now()

	_, err := store.CreateAttendance(ctx, 1, now, 11, 1)
	require.NoError(t, err)
	_, err = store.CreateAttendance(ctx, 2, now, 11, 1)
	require.NoError(t, err)

	for _, a := range []*models.ChatActivity{
		{UserID: 1, MessageID: 1, BaseScore: 3, Multiplier: 1, FinalScore: 3, CreatedAt: now},
		{UserID: 1, MessageID: 2, BaseScore: 2, IsJackpot: true, Multiplier: 5, FinalScore: 10, CreatedAt: now},
		{UserID: 2, MessageID: 3, BaseScore: 4, Multiplier: 1, FinalScore: 4, CreatedAt: now},
	} {
		_, err := store.CreateChatActivity(ctx, a)
		require.NoError(t, err)
	}

	container := newTestContainer(t, store)
	service := do.MustInvoke[*ServiceStats](container)

	stats, err := service.GetDailyStats(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, models.DateOf(now), stats.Date)
	assert.Equal(t, 2, stats.CheckInCount)
	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, 17, stats.TotalScore)
	assert.Equal(t, 1, stats.JackpotCount)
	assert.Equal(t, 2, stats.TotalUsers)

	require.Len(t, stats.TopUsers, 2)
	assert.Equal(t, int64(1), stats.TopUsers[0].UserID)
	assert.Equal(t, 100, stats.TopUsers[0].TotalScore)
}

func TestGetDailyStatsExcludesOtherDays(t *testing.T) {
	store := newFakeStore()
	store.seedUser(&models.User{ID: 1, Username: "alice", TotalScore: 10})

	ctx := context.Background()
	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)

	_, err := store.CreateAttendance(ctx, 1, yesterday, 11, 1)
	require.NoError(t, err)
	_, err = store.CreateChatActivity(ctx, &models.ChatActivity{
		UserID: 1, MessageID: 1, BaseScore: 3, Multiplier: 1, FinalScore: 3, CreatedAt: yesterday,
	})
	require.NoError(t, err)

	container := newTestContainer(t, store)
	service := do.MustInvoke[*ServiceStats](container)

	stats, err := service.GetDailyStats(ctx, now)
	require.NoError(t, err)

	assert.Zero(t, stats.CheckInCount)
	assert.Zero(t, stats.TotalMessages)
	assert.Zero(t, stats.TotalScore)
}

func TestGetMonthlyStats(t *testing.T) {
	store := newFakeStore()
	store.seedUser(&models.User{ID: 1, Username: "alice", TotalScore: 100})

	ctx := context.Background()
	now := time.Now()
	busyDay := models.DateOf(now)

	_, err := store.CreateAttendance(ctx, 1, now, 11, 1)
	require.NoError(t, err)
	for i := int64(1); i <= 3; i++ {
		_, err := store.CreateChatActivity(ctx, &models.ChatActivity{
			UserID: 1, MessageID: i, BaseScore: 2, Multiplier: 1, FinalScore: 2, CreatedAt: now,
		})
		require.NoError(t, err)
	}

	container := newTestContainer(t, store)
	service := do.MustInvoke[*ServiceStats](container)

	stats, err := service.GetMonthlyStats(ctx, now.Year(), int(now.Month()))
	require.NoError(t, err)

	assert.Equal(t, now.Year(), stats.Year)
	assert.Equal(t, int(now.Month()), stats.Month)
	assert.Equal(t, 1, stats.CheckInCount)
	assert.Equal(t, 3, stats.TotalMessages)
	assert.Equal(t, 6, stats.TotalScore)
	require.NotNil(t, stats.MostActiveDate)
	assert.Equal(t, busyDay, *stats.MostActiveDate)
	assert.Equal(t, 3, stats.MostActiveCount)
}

func TestGetMonthlyStatsEmptyMonth(t *testing.T) {
	store := newFakeStore()
	store.seedUser(&models.User{ID: 1, Username: "alice", TotalScore: 100})

	container := newTestContainer(t, store)
	service := do.MustInvoke[*ServiceStats](container)

	stats, err := service.GetMonthlyStats(context.Background(), 2001, 6)
	require.NoError(t, err)

	assert.Zero(t, stats.CheckInCount)
	assert.Zero(t, stats.TotalMessages)
	assert.Zero(t, stats.JackpotCount)
	assert.Nil(t, stats.MostActiveDate, "no activity means no busiest day")
	assert.Zero(t, stats.MostActiveCount)

	// top users are the all-time board, present even for a dead month
	require.Len(t, stats.TopUsers, 1)
	assert.Equal(t, int64(1), stats.TopUsers[0].UserID)
}

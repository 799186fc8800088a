package services

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"streakbot/internal/interfaces"
	"streakbot/internal/models"
	"streakbot/internal/pkg/caching"

	"github.com/samber/do"
)

// fakeStore is an in-memory Store for the service tests. It mirrors
// the datastore contracts: absent lookups return (nil, nil), a second
// attendance on the same (user, date) fails with
// ErrDuplicateAttendance, and InTx restores the previous state when fn
// errors.
type fakeStore struct {
	mu          sync.Mutex
	users       map[int64]*models.User
	attendances []*models.Attendance
	activities  []*models.ChatActivity
	config      *models.ScoreConfig
	nextID      int64
}

var _ interfaces.Store = (*fakeStore)(nil)

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[int64]*models.User{},
		config: models.DefaultScoreConfig(),
	}
}

func (s *fakeStore) seedUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *user
	s.users[user.ID] = &clone
}

func cloneUser(user *models.User) *models.User {
	clone := *user
	return &clone
}

func (s *fakeStore) GetUserByExternalID(ctx context.Context, externalID int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[externalID]
	if !ok {
		return nil, nil
	}
	return cloneUser(user), nil
}

func (s *fakeStore) CreateUser(ctx context.Context, externalID int64, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	user := &models.User{ID: externalID, Username: username, CreatedAt: now, UpdatedAt: now}
	s.users[externalID] = user
	return cloneUser(user), nil
}

func (s *fakeStore) UpdateUser(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (s *fakeStore) ranking(value func(*models.User) int, less func(a, b *models.User) bool, limit int) []*models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []*models.User
	for _, user := range s.users {
		if value(user) > 0 {
			users = append(users, cloneUser(user))
		}
	}
	sort.Slice(users, func(i, j int) bool { return less(users[i], users[j]) })
	if len(users) > limit {
		users = users[:limit]
	}
	return users
}

func (s *fakeStore) GetRankingByScore(ctx context.Context, limit int) ([]*models.User, error) {
	return s.ranking(
		func(u *models.User) int { return u.TotalScore },
		func(a, b *models.User) bool {
			if a.TotalScore != b.TotalScore {
				return a.TotalScore > b.TotalScore
			}
			return a.ID < b.ID
		}, limit), nil
}

func (s *fakeStore) GetRankingByChatCount(ctx context.Context, limit int) ([]*models.User, error) {
	return s.ranking(
		func(u *models.User) int { return u.ChatCount },
		func(a, b *models.User) bool {
			if a.ChatCount != b.ChatCount {
				return a.ChatCount > b.ChatCount
			}
			return a.ID < b.ID
		}, limit), nil
}

func (s *fakeStore) GetRankingByJackpot(ctx context.Context, limit int) ([]*models.User, error) {
	return s.ranking(
		func(u *models.User) int { return u.JackpotCount },
		func(a, b *models.User) bool {
			if a.JackpotCount != b.JackpotCount {
				return a.JackpotCount > b.JackpotCount
			}
			if a.MaxJackpot != b.MaxJackpot {
				return a.MaxJackpot > b.MaxJackpot
			}
			return a.ID < b.ID
		}, limit), nil
}

func (s *fakeStore) GetRankingByConsecutiveDays(ctx context.Context, limit int) ([]*models.User, error) {
	return s.ranking(
		func(u *models.User) int { return u.ConsecutiveDays },
		func(a, b *models.User) bool {
			if a.ConsecutiveDays != b.ConsecutiveDays {
				return a.ConsecutiveDays > b.ConsecutiveDays
			}
			if a.TotalAttendance != b.TotalAttendance {
				return a.TotalAttendance > b.TotalAttendance
			}
			return a.ID < b.ID
		}, limit), nil
}

func (s *fakeStore) CreateAttendance(ctx context.Context, userID int64, date time.Time, score, consecutiveDays int) (*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := models.DateOf(date)
	for _, a := range s.attendances {
		if a.UserID == userID && a.Date.Equal(day) {
			return nil, interfaces.ErrDuplicateAttendance
		}
	}

	s.nextID++
	attendance := &models.Attendance{
		ID:              s.nextID,
		UserID:          userID,
		Date:            day,
		Score:           score,
		ConsecutiveDays: consecutiveDays,
		CreatedAt:       time.Now(),
	}
	s.attendances = append(s.attendances, attendance)
	return attendance, nil
}

func (s *fakeStore) GetAttendanceCount(ctx context.Context, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, a := range s.attendances {
		if !a.Date.Before(from) && a.Date.Before(to) {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) GetAttendancesByUser(ctx context.Context, userID int64, limit int) ([]*models.Attendance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*models.Attendance
	for _, a := range s.attendances {
		if a.UserID == userID {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *fakeStore) CreateChatActivity(ctx context.Context, activity *models.ChatActivity) (*models.ChatActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	activity.ID = s.nextID
	s.activities = append(s.activities, activity)
	return activity, nil
}

func (s *fakeStore) GetActivitySummary(ctx context.Context, from, to time.Time) (*models.ActivitySummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summary := &models.ActivitySummary{}
	seen := map[int64]bool{}
	for _, a := range s.activities {
		if a.CreatedAt.Before(from) || !a.CreatedAt.Before(to) {
			continue
		}
		summary.MessageCount++
		summary.TotalScore += a.FinalScore
		if a.IsJackpot {
			summary.JackpotCount++
		}
		seen[a.UserID] = true
	}
	summary.UserCount = len(seen)
	return summary, nil
}

func (s *fakeStore) GetMostActiveDate(ctx context.Context, from, to time.Time) (*models.DayCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[time.Time]int{}
	for _, a := range s.activities {
		if a.CreatedAt.Before(from) || !a.CreatedAt.Before(to) {
			continue
		}
		counts[models.DateOf(a.CreatedAt)]++
	}
	if len(counts) == 0 {
		return nil, nil
	}

	var best *models.DayCount
	for day, count := range counts {
		if best == nil || count > best.Count || (count == best.Count && day.Before(best.Day)) {
			best = &models.DayCount{Day: day, Count: count}
		}
	}
	return best, nil
}

func (s *fakeStore) GetJackpotsByUser(ctx context.Context, userID int64, limit int) ([]*models.ChatActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result []*models.ChatActivity
	for _, a := range s.activities {
		if a.UserID == userID && a.IsJackpot {
			result = append(result, a)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].FinalScore > result[j].FinalScore })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *fakeStore) GetScoreConfig(ctx context.Context) (*models.ScoreConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *s.config
	return &clone, nil
}

func (s *fakeStore) UpdateScoreConfig(ctx context.Context, cfg *models.ScoreConfig) (*models.ScoreConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *cfg
	s.config = &clone
	return cfg, nil
}

func (s *fakeStore) InTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.Store) error) error {
	s.mu.Lock()
	users := make(map[int64]*models.User, len(s.users))
	for id, user := range s.users {
		users[id] = cloneUser(user)
	}
	attendances := len(s.attendances)
	activities := len(s.activities)
	s.mu.Unlock()

	if err := fn(ctx, s); err != nil {
		s.mu.Lock()
		s.users = users
		s.attendances = s.attendances[:attendances]
		s.activities = s.activities[:activities]
		s.mu.Unlock()
		return err
	}
	return nil
}

// newTestContainer wires the services against the fake store and a
// purely in-process cache. No redis, no postgres.
func newTestContainer(t *testing.T, store interfaces.Store) *do.Injector {
	t.Helper()

	injector := do.New()

	do.Provide(injector, func(i *do.Injector) (interfaces.Store, error) {
		return store, nil
	})

	do.Provide(injector, func(i *do.Injector) (caching.Cache, error) {
		return caching.NewCacheRedis(nil, true)
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceConfig, error) {
		return NewServiceConfig(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceUser, error) {
		return NewServiceUser(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceAttendance, error) {
		return NewServiceAttendance(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceChatActivity, error) {
		return NewServiceChatActivity(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceRanking, error) {
		return NewServiceRanking(injector)
	})

	do.Provide(injector, func(i *do.Injector) (*ServiceStats, error) {
		return NewServiceStats(injector)
	})

	return injector
}

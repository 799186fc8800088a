package services

import (
	"context"
	"log"

	"streakbot/internal/interfaces"
	"streakbot/internal/models"
	"streakbot/internal/pkg/caching"

	"github.com/samber/do"
)

type ServiceUser struct {
	container *do.Injector
	store     interfaces.Store
	cache     caching.Cache
}

func NewServiceUser(container *do.Injector) (*ServiceUser, error) {
	store, err := do.Invoke[interfaces.Store](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceUser{container, store, cache}, nil
}

// FindUserByID returns ErrUserNotRegistered for unknown identifiers so
// query surfaces can tell "no such user" from a storage failure.
func (service *ServiceUser) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	callback := func() (*models.User, error) {
		user, err := service.store.GetUserByExternalID(ctx, userID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, ErrUserNotRegistered
		}
		return user, nil
	}
	return caching.UseCache(ctx, service.cache, DBKeyUser(userID), CACHE_TTL_1_MIN, callback)
}

type UserInfoResult struct {
	User              *models.User           `json:"user"`
	RecentAttendances []*models.Attendance   `json:"recent_attendances"`
	TopJackpots       []*models.ChatActivity `json:"top_jackpots"`
}

// GetUserInfo assembles the profile card: counters, the last week of
// check-ins, and the user's biggest jackpot wins.
func (service *ServiceUser) GetUserInfo(ctx context.Context, userID int64) (*UserInfoResult, error) {
	user, err := service.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	attendances, err := service.store.GetAttendancesByUser(ctx, user.ID, RECENT_ATTENDANCE_LIMIT)
	if err != nil {
		return nil, err
	}

	jackpots, err := service.store.GetJackpotsByUser(ctx, user.ID, TOP_JACKPOT_LIMIT)
	if err != nil {
		return nil, err
	}

	return &UserInfoResult{
		User:              user,
		RecentAttendances: attendances,
		TopJackpots:       jackpots,
	}, nil
}

func (service *ServiceUser) InvalidateUser(ctx context.Context, userID int64) {
	if err := service.cache.Delete(ctx, DBKeyUser(userID)); err != nil {
		log.Println("invalidate user cache:", err)
	}
}

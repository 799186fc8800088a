package services

import (
	"context"
	"errors"
	"time"

	"streakbot/internal/interfaces"
	"streakbot/internal/models"

	"github.com/go-redsync/redsync/v4"
	"github.com/hiendaovinh/toolkit/pkg/errorx"
	"github.com/samber/do"
)

type CheckInResult struct {
	User            *models.User       `json:"user"`
	Attendance      *models.Attendance `json:"attendance"`
	Score           int                `json:"score"`
	ConsecutiveDays int                `json:"consecutive_days"`
	IsNewUser       bool               `json:"is_new_user"`
}

type ServiceAttendance struct {
	container     *do.Injector
	rs            *redsync.Redsync
	store         interfaces.Store
	serviceConfig *ServiceConfig
	serviceUser   *ServiceUser
}

func NewServiceAttendance(container *do.Injector) (*ServiceAttendance, error) {
	store, err := do.Invoke[interfaces.Store](container)
	if err != nil {
		return nil, err
	}

	serviceConfig, err := do.Invoke[*ServiceConfig](container)
	if err != nil {
		return nil, err
	}

	serviceUser, err := do.Invoke[*ServiceUser](container)
	if err != nil {
		return nil, err
	}

	// the lock is an optimization; the unique (user_id, date) index is
	// the guard that actually serializes same-day check-ins
	rs, _ := do.Invoke[*redsync.Redsync](container)

	return &ServiceAttendance{container, rs, store, serviceConfig, serviceUser}, nil
}

// CheckIn registers the user on first use, then awards the daily
// attendance score and advances the streak. The attendance row and the
// user update land in one transaction.
func (service *ServiceAttendance) CheckIn(ctx context.Context, userID int64, username string) (*CheckInResult, error) {
	if service.rs != nil {
		mutex := service.rs.NewMutex(LockKeyUserCheckIn(userID))
		if err := mutex.TryLock(); err != nil {
			return nil, errorx.Wrap(ErrCheckInLock, errorx.Invalid)
		}
		// nolint:errcheck
		defer mutex.Unlock()
	}

	now := time.Now()

	user, err := service.store.GetUserByExternalID(ctx, userID)
	if err != nil {
		return nil, err
	}

	isNewUser := false
	if user == nil {
		user, err = service.store.CreateUser(ctx, userID, username)
		if err != nil {
			return nil, err
		}
		isNewUser = true
	}

	if !user.CanCheckInToday(now) {
		return nil, ErrAlreadyCheckedIn
	}

	consecutiveDays := user.NextConsecutiveDays(now)

	cfg, err := service.serviceConfig.GetScoreConfig(ctx)
	if err != nil {
		return nil, err
	}

	score := models.AttendanceScore(cfg.AttendanceScore, consecutiveDays, cfg.MaxConsecutiveBonus)

	var attendance *models.Attendance
	updated := user.ApplyCheckIn(score, consecutiveDays, now)

	err = service.store.InTx(ctx, func(ctx context.Context, tx interfaces.Store) error {
		attendance, err = tx.CreateAttendance(ctx, user.ID, now, score, consecutiveDays)
		if err != nil {
			return err
		}

		updated, err = tx.UpdateUser(ctx, updated)
		return err
	})
	if errors.Is(err, interfaces.ErrDuplicateAttendance) {
		// a concurrent check-in won the race
		return nil, ErrAlreadyCheckedIn
	}
	if err != nil {
		return nil, err
	}

	updated.IsNewUser = isNewUser
	service.serviceUser.InvalidateUser(ctx, user.ID)

	return &CheckInResult{
		User:            updated,
		Attendance:      attendance,
		Score:           score,
		ConsecutiveDays: consecutiveDays,
		IsNewUser:       isNewUser,
	}, nil
}

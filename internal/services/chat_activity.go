package services

import (
	"context"
	"time"

	"streakbot/internal/interfaces"
	"streakbot/internal/models"

	"github.com/samber/do"
)

type ProcessMessageResult struct {
	User      *models.User         `json:"user"`
	Activity  *models.ChatActivity `json:"activity"`
	IsJackpot bool                 `json:"is_jackpot"`
}

type ServiceChatActivity struct {
	container     *do.Injector
	store         interfaces.Store
	serviceConfig *ServiceConfig
	serviceUser   *ServiceUser
	rng           models.Rand
}

func NewServiceChatActivity(container *do.Injector) (*ServiceChatActivity, error) {
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

	rng, err := do.Invoke[models.Rand](container)
	if err != nil {
		rng = models.DefaultRand
	}

	return &ServiceChatActivity{container, store, serviceConfig, serviceUser, rng}, nil
}

// ProcessMessage scores one chat message. Messages from unregistered
// users are ignored, not an error: the result is nil and nothing is
// written.
func (service *ServiceChatActivity) ProcessMessage(ctx context.Context, userID, messageID int64) (*ProcessMessageResult, error) {
	user, err := service.store.GetUserByExternalID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	cfg, err := service.serviceConfig.GetScoreConfig(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	activity := models.NewChatActivity(user.ID, messageID, cfg, service.rng)
	updated := user.ApplyChatActivity(activity, now)

	err = service.store.InTx(ctx, func(ctx context.Context, tx interfaces.Store) error {
		activity, err = tx.CreateChatActivity(ctx, activity)
		if err != nil {
			return err
		}

		updated, err = tx.UpdateUser(ctx, updated)
		return err
	})
	if err != nil {
		return nil, err
	}

	service.serviceUser.InvalidateUser(ctx, user.ID)

	return &ProcessMessageResult{
		User:      updated,
		Activity:  activity,
		IsJackpot: activity.IsJackpot,
	}, nil
}

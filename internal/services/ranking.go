package services

import (
	"context"
	"fmt"

	"streakbot/internal/interfaces"
	"streakbot/internal/models"

	"github.com/samber/do"
)

type ServiceRanking struct {
	container *do.Injector
	store     interfaces.Store
}

func NewServiceRanking(container *do.Injector) (*ServiceRanking, error) {
	store, err := do.Invoke[interfaces.Store](container)
	if err != nil {
		return nil, err
	}

	return &ServiceRanking{container, store}, nil
}

// GetRanking returns the top users for one dimension, highest first.
// Users with a zero value in that dimension are excluded rather than
// listed at the bottom.
func (service *ServiceRanking) GetRanking(ctx context.Context, rankingType models.RankingType, limit int) (*models.RankingResult, error) {
	if limit <= 0 {
		limit = RANKING_DEFAULT_LIMIT
	}

	var users []*models.User
	var err error

	switch rankingType {
	case models.RankingByScore:
		users, err = service.store.GetRankingByScore(ctx, limit)
	case models.RankingByChatCount:
		users, err = service.store.GetRankingByChatCount(ctx, limit)
	case models.RankingByJackpot:
		users, err = service.store.GetRankingByJackpot(ctx, limit)
	case models.RankingByConsecutiveDays:
		users, err = service.store.GetRankingByConsecutiveDays(ctx, limit)
	default:
		return nil, fmt.Errorf("unknown ranking type %q", rankingType)
	}
	if err != nil {
		return nil, err
	}

	return &models.RankingResult{Type: rankingType, Users: users}, nil
}

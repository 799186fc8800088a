package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"streakbot/internal/interfaces"
	"streakbot/internal/models"
	"streakbot/internal/pkg/caching"

	"github.com/samber/do"
)

type ServiceConfig struct {
	container *do.Injector
	store     interfaces.Store
	cache     caching.Cache
}

func NewServiceConfig(container *do.Injector) (*ServiceConfig, error) {
	store, err := do.Invoke[interfaces.Store](container)
	if err != nil {
		return nil, err
	}

	cache, err := do.Invoke[caching.Cache](container)
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{container, store, cache}, nil
}

// GetScoreConfig loads the singleton scoring config. An invalid
// persisted config blocks the caller instead of being clamped.
func (service *ServiceConfig) GetScoreConfig(ctx context.Context) (*models.ScoreConfig, error) {
	callback := func() (*models.ScoreConfig, error) {
		return service.store.GetScoreConfig(ctx)
	}

	cfg, err := caching.UseCache(ctx, service.cache, DBKeyScoreConfig(), CACHE_TTL_5_MINS, callback)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidScoreConfig, err)
	}

	return cfg, nil
}

// UpdateScoreConfig validates and persists new tunables, then drops the
// cached copy so the next read sees them.
func (service *ServiceConfig) UpdateScoreConfig(ctx context.Context, cfg *models.ScoreConfig) (*models.ScoreConfig, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidScoreConfig, err)
	}

	cfg.ID = 1
	cfg.UpdatedAt = time.Now()
	updated, err := service.store.UpdateScoreConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := service.cache.Delete(ctx, DBKeyScoreConfig()); err != nil {
		log.Println("invalidate score config cache:", err)
	}

	return updated, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"societyBack/internal/cache"
	"societyBack/internal/models"
)

// Cache is the JSON cache the top listings are served from.
type Cache interface {
	Get(ctx context.Context, name string, dst any) error
	Set(ctx context.Context, name string, value any, ttl time.Duration) error
	DeletePattern(ctx context.Context, pattern string) (int, error)
}

// TopService serves the landing page aggregates. Cache may be nil.
type TopService struct {
	Repo  TopStore
	Cache Cache
	TTL   time.Duration
	Log   Logger
}

func NewTopService(repo TopStore, c Cache, ttl time.Duration, log Logger) *TopService {
	return &TopService{Repo: repo, Cache: c, TTL: ttl, Log: log}
}

func (s *TopService) TopCategories(ctx context.Context, limit int) ([]models.TopCategory, error) {
	limit = models.ClampTopLimit(limit)
	key := fmt.Sprintf("top:categories:%d", limit)

	var out []models.TopCategory
	if s.cached(ctx, key, &out) {
		return out, nil
	}
	out, err := s.Repo.TopCategories(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, out)
	return out, nil
}

func (s *TopService) TopServices(ctx context.Context, limit int) ([]models.TopService, error) {
	limit = models.ClampTopLimit(limit)
	key := fmt.Sprintf("top:services:%d", limit)

	var out []models.TopService
	if s.cached(ctx, key, &out) {
		return out, nil
	}
	out, err := s.Repo.TopServices(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, out)
	return out, nil
}

// Refresh drops every cached listing and warms the default-sized ones. It
// returns the number of dropped keys.
func (s *TopService) Refresh(ctx context.Context) (int, error) {
	if s.Cache == nil {
		return 0, nil
	}
	dropped, err := s.Cache.DeletePattern(ctx, "top:*")
	if err != nil {
		return 0, err
	}
	if _, err := s.TopCategories(ctx, models.DefaultTopLimit); err != nil {
		return dropped, err
	}
	if _, err := s.TopServices(ctx, models.DefaultTopLimit); err != nil {
		return dropped, err
	}
	return dropped, nil
}

func (s *TopService) cached(ctx context.Context, key string, dst any) bool {
	if s.Cache == nil {
		return false
	}
	err := s.Cache.Get(ctx, key, dst)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) && s.Log != nil {
		s.Log.Errorf("top cache read %s: %v", key, err)
	}
	return false
}

func (s *TopService) store(ctx context.Context, key string, value any) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, key, value, s.TTL); err != nil && s.Log != nil {
		s.Log.Errorf("top cache write %s: %v", key, err)
	}
}

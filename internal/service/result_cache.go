package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dadmind/internal/cache"
	"dadmind/internal/domain"
	"dadmind/internal/logger"

	"go.uber.org/zap"
)

// ErrResultNotCached is returned when a result is not found in the cache.
var ErrResultNotCached = errors.New("assessment result not found in cache")

// StoredResult is an assessment result kept for later advice and report requests.
type StoredResult struct {
	ID          string                   `json:"id"`
	Result      *domain.AssessmentResult `json:"result"`
	SubmittedAt time.Time                `json:"submitted_at"`
	Advice      string                   `json:"advice,omitempty"`
}

// ResultCacheService caches assessment results by id.
type ResultCacheService interface {
	Put(ctx context.Context, stored *StoredResult) error
	Get(ctx context.Context, id string) (*StoredResult, error)
}

type resultCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewResultCacheService returns a no-op service when c is nil.
func NewResultCacheService(c domain.Cache, ttl time.Duration) ResultCacheService {
	if c == nil {
		logger.Get().Warn("ResultCacheService initialized with nil cache. Service will be no-op.")
		return &noopResultCacheService{}
	}
	return &resultCacheServiceImpl{cache: c, ttl: ttl}
}

func (s *resultCacheServiceImpl) generateKey(id string) string {
	return cache.AssessmentResultKey(id)
}

func (s *resultCacheServiceImpl) Put(ctx context.Context, stored *StoredResult) error {
	if stored == nil || stored.Result == nil {
		return domain.NewInvalidInputError("cannot cache nil result")
	}

	key := s.generateKey(stored.ID)
	data, err := json.Marshal(stored)
	if err != nil {
		logger.Get().Error("Failed to marshal assessment result for caching", zap.Error(err), zap.String("resultID", stored.ID))
		return domain.NewInternalError("failed to marshal result for caching", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Error("Failed to cache assessment result", zap.Error(err), zap.String("key", key))
		return domain.NewInternalError(fmt.Sprintf("failed to set assessment result to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached assessment result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *resultCacheServiceImpl) Get(ctx context.Context, id string) (*StoredResult, error) {
	key := s.generateKey(id)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Debug("Assessment result cache miss", zap.String("key", key))
			return nil, ErrResultNotCached
		}
		logger.Get().Error("Failed to get assessment result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get assessment result from cache for key %s", key), err)
	}
	if data == "" {
		return nil, ErrResultNotCached
	}

	var stored StoredResult
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		logger.Get().Error("Failed to unmarshal assessment result from cache", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal result from cache for key %s", key), err)
	}
	return &stored, nil
}

type noopResultCacheService struct{}

func (s *noopResultCacheService) Put(ctx context.Context, stored *StoredResult) error {
	return nil
}

func (s *noopResultCacheService) Get(ctx context.Context, id string) (*StoredResult, error) {
	return nil, ErrResultNotCached
}

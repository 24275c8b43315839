package service

import (
	"context"
	"errors"
	"time"

	"dadmind/internal/domain"
	"dadmind/internal/logger"
	"dadmind/internal/util"

	"go.uber.org/zap"
)

// AdviceOutcome is the advice for a result, or the fallback text plus the
// reason it could not be produced.
type AdviceOutcome struct {
	Advice string
	Err    error
	Cached bool
}

// AssessmentReport is the text report and action plan of a stored result.
type AssessmentReport struct {
	Report     string
	ActionPlan []string
}

// AssessmentService scores submissions and serves their follow-up artifacts.
type AssessmentService interface {
	Questions() []domain.Question
	Submit(ctx context.Context, answers domain.AnswerSet) (*StoredResult, error)
	Result(ctx context.Context, id string) (*StoredResult, error)
	Advice(ctx context.Context, id string) (*AdviceOutcome, error)
	Report(ctx context.Context, id string) (*AssessmentReport, error)
}

type assessmentService struct {
	engine  *domain.Engine
	results ResultCacheService
	advice  AdviceService
	newID   func() string
	now     func() time.Time
}

func NewAssessmentService(engine *domain.Engine, results ResultCacheService, advice AdviceService) AssessmentService {
	if engine == nil {
		engine = domain.DefaultEngine()
	}
	if results == nil {
		results = &noopResultCacheService{}
	}
	return &assessmentService{
		engine:  engine,
		results: results,
		advice:  advice,
		newID:   util.NewULID,
		now:     time.Now,
	}
}

func (s *assessmentService) Questions() []domain.Question {
	return s.engine.Questions()
}

// Submit scores the answers. The result is returned even when it cannot be
// cached; only the follow-up lookups depend on the cache.
func (s *assessmentService) Submit(ctx context.Context, answers domain.AnswerSet) (*StoredResult, error) {
	result := s.engine.Assess(answers)
	stored := &StoredResult{
		ID:          s.newID(),
		Result:      result,
		SubmittedAt: s.now(),
	}

	if err := s.results.Put(ctx, stored); err != nil {
		logger.Get().Warn("Assessment result not cached", zap.String("resultID", stored.ID), zap.Error(err))
	}
	logger.Get().Info("Assessment scored",
		zap.String("resultID", stored.ID),
		zap.String("riskTier", string(result.RiskTier)),
		zap.Float64("weightedScore", result.WeightedScore),
		zap.Int("urgentFlags", len(result.UrgentFlags)))
	return stored, nil
}

func (s *assessmentService) Result(ctx context.Context, id string) (*StoredResult, error) {
	stored, err := s.results.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrResultNotCached) {
			return nil, domain.NewResultNotFoundError(id)
		}
		return nil, err
	}
	return stored, nil
}

// Advice synthesizes advice once per result; a successful answer is cached
// with the result.
func (s *assessmentService) Advice(ctx context.Context, id string) (*AdviceOutcome, error) {
	stored, err := s.Result(ctx, id)
	if err != nil {
		return nil, err
	}
	if stored.Advice != "" {
		return &AdviceOutcome{Advice: stored.Advice, Cached: true}, nil
	}
	if s.advice == nil {
		return &AdviceOutcome{Advice: AdviceConfigFallback, Err: domain.NewAIUnavailableError("advice synthesis is not configured")}, nil
	}

	text, err := s.advice.Synthesize(ctx, stored.Result)
	if err != nil {
		return &AdviceOutcome{Advice: text, Err: err}, nil
	}

	stored.Advice = text
	if err := s.results.Put(ctx, stored); err != nil {
		logger.Get().Warn("Advice not cached", zap.String("resultID", id), zap.Error(err))
	}
	return &AdviceOutcome{Advice: text}, nil
}

func (s *assessmentService) Report(ctx context.Context, id string) (*AssessmentReport, error) {
	stored, err := s.Result(ctx, id)
	if err != nil {
		return nil, err
	}
	return &AssessmentReport{
		Report:     s.engine.DetailedReport(stored.Result, stored.SubmittedAt),
		ActionPlan: domain.ActionPlan(stored.Result),
	}, nil
}

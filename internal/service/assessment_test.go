package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dadmind/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestAssessmentService(c domain.Cache, advice AdviceService) *assessmentService {
	svc := NewAssessmentService(nil, NewResultCacheService(c, time.Hour), advice).(*assessmentService)
	svc.newID = sequentialIDs()
	svc.now = func() time.Time { return convClock }
	return svc
}

func TestAssessmentService_SubmitAndFetch(t *testing.T) {
	svc := newTestAssessmentService(newMemoryCache(), nil)

	stored, err := svc.Submit(context.Background(), domain.AnswerSet{"q29": "q29o1"})
	require.NoError(t, err)
	assert.Equal(t, "id-01", stored.ID)
	assert.Equal(t, domain.RiskTierSevere, stored.Result.RiskTier)

	got, err := svc.Result(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.Result, got.Result)

	_, err = svc.Result(context.Background(), "unknown")
	assert.True(t, domain.IsCode(err, domain.ErrResultNotFound))
	assert.Len(t, svc.Questions(), 30)
}

func TestAssessmentService_SubmitSurvivesCacheFailure(t *testing.T) {
	c := newMemoryCache()
	c.setErr = errors.New("disk full")
	svc := newTestAssessmentService(c, nil)

	stored, err := svc.Submit(context.Background(), domain.AnswerSet{})
	require.NoError(t, err)
	assert.Equal(t, domain.RiskTierLow, stored.Result.RiskTier)
}

func TestAssessmentService_AdviceIsCachedOnSuccess(t *testing.T) {
	advice := new(MockAdviceService)
	svc := newTestAssessmentService(newMemoryCache(), advice)
	stored, err := svc.Submit(context.Background(), domain.AnswerSet{"q1": "q1o1"})
	require.NoError(t, err)

	advice.On("Synthesize", mock.Anything, mock.AnythingOfType("*domain.AssessmentResult")).Return("Lời khuyên", nil).Once()

	first, err := svc.Advice(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lời khuyên", first.Advice)
	assert.NoError(t, first.Err)
	assert.False(t, first.Cached)

	second, err := svc.Advice(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lời khuyên", second.Advice)
	assert.True(t, second.Cached)
	advice.AssertExpectations(t)
}

func TestAssessmentService_AdviceFailureReturnsFallback(t *testing.T) {
	advice := new(MockAdviceService)
	svc := newTestAssessmentService(newMemoryCache(), advice)
	stored, err := svc.Submit(context.Background(), domain.AnswerSet{})
	require.NoError(t, err)

	llmErr := domain.NewLLMServiceError(errors.New("503"))
	advice.On("Synthesize", mock.Anything, mock.Anything).Return(AdviceFallback, llmErr).Twice()

	outcome, err := svc.Advice(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, AdviceFallback, outcome.Advice)
	assert.ErrorIs(t, outcome.Err, llmErr)

	// A failure is not cached; the next request retries.
	_, err = svc.Advice(context.Background(), stored.ID)
	require.NoError(t, err)
	advice.AssertExpectations(t)

	_, err = svc.Advice(context.Background(), "unknown")
	assert.True(t, domain.IsCode(err, domain.ErrResultNotFound))
}

func TestAssessmentService_AdviceWithoutSynthesizer(t *testing.T) {
	svc := newTestAssessmentService(newMemoryCache(), nil)
	stored, _ := svc.Submit(context.Background(), domain.AnswerSet{})

	outcome, err := svc.Advice(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Equal(t, AdviceConfigFallback, outcome.Advice)
	assert.True(t, domain.IsCode(outcome.Err, domain.ErrAIUnavailable))
}

func TestAssessmentService_Report(t *testing.T) {
	svc := newTestAssessmentService(newMemoryCache(), nil)
	stored, err := svc.Submit(context.Background(), domain.AnswerSet{"q1": "q1o1"})
	require.NoError(t, err)

	report, err := svc.Report(context.Background(), stored.ID)
	require.NoError(t, err)
	assert.Contains(t, report.Report, "5/3/2025")
	assert.NotEmpty(t, report.ActionPlan)

	_, err = svc.Report(context.Background(), "unknown")
	assert.True(t, domain.IsCode(err, domain.ErrResultNotFound))
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dadmind/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCacheService_PutGet(t *testing.T) {
	c := newMemoryCache()
	svc := NewResultCacheService(c, time.Hour)

	stored := &StoredResult{ID: "r1", Result: domain.Assess(domain.AnswerSet{"q1": "q1o1"}), SubmittedAt: convClock}
	require.NoError(t, svc.Put(context.Background(), stored))
	assert.Equal(t, []string{"dadmind:assessment:result:r1"}, c.setKeys)

	got, err := svc.Get(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, stored.Result, got.Result)
	assert.True(t, got.SubmittedAt.Equal(convClock))
}

func TestResultCacheService_Errors(t *testing.T) {
	c := newMemoryCache()
	svc := NewResultCacheService(c, time.Hour)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrResultNotCached)

	assert.True(t, domain.IsCode(svc.Put(context.Background(), nil), domain.ErrInvalidInput))

	c.data["dadmind:assessment:result:bad"] = "{"
	_, err = svc.Get(context.Background(), "bad")
	assert.True(t, domain.IsCode(err, domain.ErrInternal))

	c.getErr = errors.New("timeout")
	_, err = svc.Get(context.Background(), "r1")
	assert.True(t, domain.IsCode(err, domain.ErrInternal))

	c.setErr = errors.New("oom")
	err = svc.Put(context.Background(), &StoredResult{ID: "r2", Result: &domain.AssessmentResult{}})
	assert.True(t, domain.IsCode(err, domain.ErrInternal))
}

func TestResultCacheService_NilCache(t *testing.T) {
	svc := NewResultCacheService(nil, time.Hour)
	require.NoError(t, svc.Put(context.Background(), &StoredResult{ID: "r1", Result: &domain.AssessmentResult{}}))
	_, err := svc.Get(context.Background(), "r1")
	assert.ErrorIs(t, err, ErrResultNotCached)
}

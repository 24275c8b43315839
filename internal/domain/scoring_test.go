package domain

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answerAll picks the option at index idx (0 = highest value) for every question.
func answerAll(idx int) AnswerSet {
	answers := AnswerSet{}
	for _, q := range DefaultQuestions() {
		answers[q.ID] = q.Options[idx].ID
	}
	return answers
}

func optionWithValue(t *testing.T, questionID string, value int) string {
	t.Helper()
	for _, q := range DefaultQuestions() {
		if q.ID != questionID {
			continue
		}
		for _, opt := range q.Options {
			if opt.Value == value {
				return opt.ID
			}
		}
	}
	t.Fatalf("no option with value %d for %s", value, questionID)
	return ""
}

func TestDefaultQuestions_Invariants(t *testing.T) {
	questions := DefaultQuestions()
	require.Len(t, questions, 30)

	seen := map[string]bool{}
	for _, q := range questions {
		assert.False(t, seen[q.ID], "duplicate question id %s", q.ID)
		seen[q.ID] = true
		assert.NotEmpty(t, q.Options, "question %s has no options", q.ID)
		for _, opt := range q.Options {
			assert.GreaterOrEqual(t, opt.Value, 0)
			assert.LessOrEqual(t, opt.Value, MaxScorePerQuestion)
		}
	}

	// Returned slices are copies.
	questions[0].Options[0].Value = 99
	assert.Equal(t, 3, DefaultQuestions()[0].Options[0].Value)
}

func TestAssess_LowestAnswersAreLowRisk(t *testing.T) {
	result := Assess(answerAll(3))

	assert.Equal(t, RiskTierLow, result.RiskTier)
	assert.Empty(t, result.UrgentFlags)
	assert.Equal(t, 0, result.TotalScore)
	assert.Equal(t, 0.0, result.WeightedScore)
	assert.Equal(t, 90, result.MaxPossibleScore)
	assert.InDelta(t, 118.8, result.MaxPossibleWeightedScore, 1e-9)
	for category, cs := range result.CategoryScores {
		assert.Equal(t, 0, cs.Percentage, category)
	}
}

func TestAssess_HighestAnswersAreSevere(t *testing.T) {
	result := Assess(answerAll(0))

	assert.Equal(t, RiskTierSevere, result.RiskTier)
	assert.Equal(t, result.MaxPossibleScore, result.TotalScore)
	assert.InDelta(t, result.MaxPossibleWeightedScore, result.WeightedScore, 1e-9)
	assert.Len(t, result.UrgentFlags, 4)
	assert.Equal(t, crisisRecommendations, result.Recommendations[:2])
}

func TestAssess_SelfHarmEndToEnd(t *testing.T) {
	answers := answerAll(3)
	answers[QuestionSelfHarmIdeation] = optionWithValue(t, QuestionSelfHarmIdeation, 3)

	result := Assess(answers)

	require.Len(t, result.UrgentFlags, 1)
	assert.Contains(t, result.UrgentFlags[0], "tự làm hại bản thân")
	assert.Equal(t, RiskTierSevere, result.RiskTier)
	assert.Equal(t, CrisisRecommendations(), result.Recommendations[:2])
	assert.Equal(t, 3, result.TotalScore)
	assert.InDelta(t, 6.0, result.WeightedScore, 1e-9)
	assert.Equal(t, 100, result.CategoryScores["suicidal_ideation"].Percentage)
}

func TestAssess_SelfHarmForcesSevereRegardlessOfOthers(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		answers := AnswerSet{}
		for _, q := range DefaultQuestions() {
			answers[q.ID] = q.Options[rng.Intn(len(q.Options))].ID
		}
		answers[QuestionSelfHarmIdeation] = optionWithValue(t, QuestionSelfHarmIdeation, 2)

		result := Assess(answers)
		assert.Equal(t, RiskTierSevere, result.RiskTier)
	}
}

func TestAssess_UrgentRulesAreIndependent(t *testing.T) {
	tests := []struct {
		name      string
		questions []string
		value     int
		wantFlags int
	}{
		{"value below threshold", []string{QuestionSubstanceUse}, 1, 0},
		{"substance use", []string{QuestionSubstanceUse}, 2, 1},
		{"anger and loss of control", []string{QuestionAngerControl, QuestionLossOfControl}, 2, 2},
		{"all four", []string{QuestionSubstanceUse, QuestionAngerControl, QuestionLossOfControl, QuestionSelfHarmIdeation}, 3, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			answers := answerAll(3)
			for _, qid := range tt.questions {
				answers[qid] = optionWithValue(t, qid, tt.value)
			}
			result := Assess(answers)
			assert.Len(t, result.UrgentFlags, tt.wantFlags)
			if tt.wantFlags > 0 {
				assert.Equal(t, RiskTierSevere, result.RiskTier)
			}
		})
	}
}

func TestAssess_TierThresholds(t *testing.T) {
	q := []Question{{
		ID:       "x1",
		Category: "c",
		Options:  []Option{{ID: "a", Value: 3}, {ID: "b", Value: 2}, {ID: "c", Value: 1}, {ID: "d", Value: 0}},
		Weight:   10,
	}}
	engine := NewEngine(q, Thresholds{SevereWeighted: 30, HighWeighted: 20, ModerateWeighted: 10, CategoryAttention: 50}, nil)

	tests := []struct {
		option string
		want   RiskTier
	}{
		{"a", RiskTierSevere},
		{"b", RiskTierHigh},
		{"c", RiskTierModerate},
		{"d", RiskTierLow},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("option %s", tt.option), func(t *testing.T) {
			assert.Equal(t, tt.want, engine.Assess(AnswerSet{"x1": tt.option}).RiskTier)
		})
	}
}

func TestAssess_UnansweredAndUnknownIDs(t *testing.T) {
	result := Assess(AnswerSet{
		"q999": "q999o1",
		"q1":   "nope",
		"q2":   optionWithValue(t, "q2", 2),
	})

	assert.Equal(t, 2, result.TotalScore)
	assert.InDelta(t, 3.0, result.WeightedScore, 1e-9)
	assert.Equal(t, 90, result.MaxPossibleScore)
	assert.Equal(t, CategoryScore{Score: 0, MaxScore: 3, Percentage: 0}, result.CategoryScores["sleep"])
	assert.Equal(t, CategoryScore{Score: 2, MaxScore: 3, Percentage: 67}, result.CategoryScores["irritability"])
	assert.Len(t, result.CategoryScores, 30)
}

func TestAssess_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		answers := AnswerSet{}
		for _, q := range DefaultQuestions() {
			if rng.Intn(4) == 0 {
				continue
			}
			answers[q.ID] = q.Options[rng.Intn(len(q.Options))].ID
		}

		result := Assess(answers)
		again := Assess(answers)

		assert.Equal(t, result, again)
		assert.LessOrEqual(t, result.TotalScore, result.MaxPossibleScore)
		assert.LessOrEqual(t, result.WeightedScore, result.MaxPossibleWeightedScore+1e-9)
		for _, cs := range result.CategoryScores {
			assert.GreaterOrEqual(t, cs.Percentage, 0)
			assert.LessOrEqual(t, cs.Percentage, 100)
		}
		seen := map[string]bool{}
		for _, rec := range result.Recommendations {
			assert.False(t, seen[rec], "duplicate recommendation %q", rec)
			seen[rec] = true
		}
	}
}

func TestAssess_RecommendationOrder(t *testing.T) {
	answers := answerAll(3)
	answers["q1"] = optionWithValue(t, "q1", 3)  // sleep
	answers["q15"] = optionWithValue(t, "q15", 2) // work_stress
	answers["q7"] = optionWithValue(t, "q7", 1)   // financial_anxiety, below attention

	result := Assess(answers)

	assert.Equal(t, RiskTierLow, result.RiskTier)
	want := append([]string{}, tierRecommendations[RiskTierLow]...)
	want = append(want, categoryRecommendations["sleep"], categoryRecommendations["work_stress"])
	want = append(want, closingRecommendations...)
	assert.Equal(t, want, result.Recommendations)
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, dedupe([]string{"a", "b", "a", "c", "b"}))
	assert.Empty(t, dedupe(nil))
}

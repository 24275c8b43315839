package domain

// MaxScorePerQuestion is the highest option value any question in the bank carries.
const MaxScorePerQuestion = 3

// DefaultQuestionWeight applies to questions that do not declare a weight.
const DefaultQuestionWeight = 1.0

// RiskTier is the overall severity classification of an assessment.
type RiskTier string

const (
	RiskTierLow      RiskTier = "low"
	RiskTierModerate RiskTier = "moderate"
	RiskTierHigh     RiskTier = "high"
	RiskTierSevere   RiskTier = "severe"
)

// Option is one selectable answer of a question.
type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// Question is one immutable item of the self-assessment battery.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Options  []Option `json:"options"`
	// Weight multiplies the option value in the weighted score. Zero means DefaultQuestionWeight.
	Weight float64 `json:"weight,omitempty"`
}

// EffectiveWeight returns the configured weight or the default.
func (q Question) EffectiveWeight() float64 {
	if q.Weight == 0 {
		return DefaultQuestionWeight
	}
	return q.Weight
}

// OptionValue returns the value of the option with the given id.
func (q Question) OptionValue(optionID string) (int, bool) {
	for _, opt := range q.Options {
		if opt.ID == optionID {
			return opt.Value, true
		}
	}
	return 0, false
}

// AnswerSet maps a question id to the selected option id.
type AnswerSet map[string]string

// CategoryScore aggregates the raw score of all questions sharing a category.
type CategoryScore struct {
	Score      int `json:"score"`
	MaxScore   int `json:"max_score"`
	Percentage int `json:"percentage"`
}

// AssessmentResult is the derived, immutable outcome of one quiz submission.
type AssessmentResult struct {
	TotalScore               int                      `json:"total_score"`
	WeightedScore            float64                  `json:"weighted_score"`
	MaxPossibleScore         int                      `json:"max_possible_score"`
	MaxPossibleWeightedScore float64                  `json:"max_possible_weighted_score"`
	RiskTier                 RiskTier                 `json:"risk_tier"`
	CategoryScores           map[string]CategoryScore `json:"category_scores"`
	UrgentFlags              []string                 `json:"urgent_flags"`
	Recommendations          []string                 `json:"recommendations"`
}

// HasUrgentFlags reports whether any safety condition fired.
func (r *AssessmentResult) HasUrgentFlags() bool {
	return len(r.UrgentFlags) > 0
}

package dto

import "time"

// OptionResponse is one selectable answer. Option values stay server-side.
type OptionResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// QuestionResponse represents a question of the self-assessment battery
type QuestionResponse struct {
	ID           string           `json:"id"`
	Text         string           `json:"text"`
	Category     string           `json:"category"`
	CategoryName string           `json:"category_name"`
	Options      []OptionResponse `json:"options"`
}

type QuestionsResponse struct {
	Questions []QuestionResponse `json:"questions"`
	Total     int                `json:"total"`
}

// SubmitAssessmentRequest maps question ids to the chosen option ids
type SubmitAssessmentRequest struct {
	Answers map[string]string `json:"answers"`
}

type CategoryScoreResponse struct {
	Name           string `json:"name"`
	Score          int    `json:"score"`
	MaxScore       int    `json:"max_score"`
	Percentage     int    `json:"percentage"`
	NeedsAttention bool   `json:"needs_attention"`
}

// AssessmentResultResponse is the numeric outcome of a submission
type AssessmentResultResponse struct {
	ID                       string                           `json:"id"`
	SubmittedAt              time.Time                        `json:"submitted_at"`
	RiskTier                 string                           `json:"risk_tier"`
	RiskTierLabel            string                           `json:"risk_tier_label"`
	RiskTierDescription      string                           `json:"risk_tier_description"`
	TotalScore               int                              `json:"total_score"`
	MaxPossibleScore         int                              `json:"max_possible_score"`
	WeightedScore            float64                          `json:"weighted_score"`
	MaxPossibleWeightedScore float64                          `json:"max_possible_weighted_score"`
	CategoryScores           map[string]CategoryScoreResponse `json:"category_scores"`
	UrgentFlags              []string                         `json:"urgent_flags"`
	Recommendations          []string                         `json:"recommendations"`
}

// AdviceResponse carries the advice or the fallback text. Error is set when
// the fallback is shown.
type AdviceResponse struct {
	ResultID  string `json:"result_id"`
	Advice    string `json:"advice"`
	Cached    bool   `json:"cached"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"error_code,omitempty"`
}

type ReportResponse struct {
	ResultID   string   `json:"result_id"`
	Report     string   `json:"report"`
	ActionPlan []string `json:"action_plan"`
}

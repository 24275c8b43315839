package handler

import (
	"errors"

	"dadmind/internal/domain"
	"dadmind/internal/dto"
	"dadmind/internal/service"
)

func toQuestionResponse(q domain.Question) dto.QuestionResponse {
	options := make([]dto.OptionResponse, 0, len(q.Options))
	for _, o := range q.Options {
		options = append(options, dto.OptionResponse{ID: o.ID, Text: o.Text})
	}
	return dto.QuestionResponse{
		ID:           q.ID,
		Text:         q.Text,
		Category:     q.Category,
		CategoryName: domain.CategoryDisplayName(q.Category),
		Options:      options,
	}
}

func toResultResponse(stored *service.StoredResult, attentionPercentage int) dto.AssessmentResultResponse {
	r := stored.Result
	categories := make(map[string]dto.CategoryScoreResponse, len(r.CategoryScores))
	for key, cs := range r.CategoryScores {
		categories[key] = dto.CategoryScoreResponse{
			Name:           domain.CategoryDisplayName(key),
			Score:          cs.Score,
			MaxScore:       cs.MaxScore,
			Percentage:     cs.Percentage,
			NeedsAttention: cs.Percentage >= attentionPercentage,
		}
	}
	urgent := r.UrgentFlags
	if urgent == nil {
		urgent = []string{}
	}
	return dto.AssessmentResultResponse{
		ID:                       stored.ID,
		SubmittedAt:              stored.SubmittedAt,
		RiskTier:                 string(r.RiskTier),
		RiskTierLabel:            domain.RiskTierLabel(r.RiskTier),
		RiskTierDescription:      domain.RiskTierDescription(r.RiskTier),
		TotalScore:               r.TotalScore,
		MaxPossibleScore:         r.MaxPossibleScore,
		WeightedScore:            r.WeightedScore,
		MaxPossibleWeightedScore: r.MaxPossibleWeightedScore,
		CategoryScores:           categories,
		UrgentFlags:              urgent,
		Recommendations:          r.Recommendations,
	}
}

func toMessageResponse(m domain.ChatMessage) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        m.ID,
		Sender:    string(m.Sender),
		Kind:      string(m.Kind),
		Text:      m.Text,
		Timestamp: m.Timestamp,
		Avatar:    m.Avatar,
	}
}

func toMessagePtr(m *domain.ChatMessage) *dto.MessageResponse {
	if m == nil {
		return nil
	}
	resp := toMessageResponse(*m)
	return &resp
}

func toSessionResponse(s *domain.ChatSession, activeID string) dto.SessionResponse {
	messages := make([]dto.MessageResponse, 0, len(s.Messages))
	for _, m := range s.Messages {
		messages = append(messages, toMessageResponse(m))
	}
	return dto.SessionResponse{
		ID:        s.ID,
		Title:     s.Title,
		Active:    s.ID == activeID,
		Messages:  messages,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toSessionSummary(s *domain.ChatSession, activeID string) dto.SessionSummary {
	return dto.SessionSummary{
		ID:           s.ID,
		Title:        s.Title,
		MessageCount: len(s.Messages),
		Active:       s.ID == activeID,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func toSendMessageResponse(res *service.SendResult) dto.SendMessageResponse {
	resp := dto.SendMessageResponse{
		SessionID:    res.SessionID,
		UserMessage:  toMessageResponse(res.UserMessage),
		BotMessage:   toMessagePtr(res.BotMessage),
		ErrorMessage: toMessagePtr(res.ErrorMessage),
		ContextUsed:  res.ContextUsed,
		Warning:      res.Warning,
	}
	if res.Error != nil {
		resp.Error = res.Error.Error()
		resp.ErrorCode = errorCode(res.Error)
	}
	return resp
}

func errorCode(err error) string {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return string(domainErr.Code)
	}
	return string(domain.ErrInternal)
}

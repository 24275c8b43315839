package service

import (
	"context"
	"fmt"
	"strings"

	"dadmind/internal/domain"
	"dadmind/internal/logger"

	"go.uber.org/zap"
)

const (
	// AdviceFallback is shown in place of advice when the completion fails.
	AdviceFallback = "Không thể tải lời khuyên vào lúc này do lỗi kỹ thuật."
	// AdviceConfigFallback is shown when no provider is configured.
	AdviceConfigFallback = "Không thể tải lời khuyên do lỗi cấu hình."

	adviceAttentionPercentage = 50
	adviceTopCategories       = 3
)

// AdviceErrorMessage formats a synthesis failure for display next to the fallback.
func AdviceErrorMessage(err error) string {
	return fmt.Sprintf("Xin lỗi, đã có lỗi xảy ra khi tạo lời khuyên. Vui lòng thử lại sau. (%s)", err.Error())
}

// AdviceService writes a narrative interpretation of an assessment result.
type AdviceService interface {
	// Synthesize returns the model's advice. On failure it returns a fallback
	// text together with the classified error.
	Synthesize(ctx context.Context, result *domain.AssessmentResult) (string, error)
}

type adviceService struct {
	provider domain.CompletionProvider
}

// NewAdviceService accepts a nil provider; every call then fails with AI_UNAVAILABLE.
func NewAdviceService(provider domain.CompletionProvider) AdviceService {
	return &adviceService{provider: provider}
}

func (s *adviceService) Synthesize(ctx context.Context, result *domain.AssessmentResult) (string, error) {
	if result == nil {
		return AdviceFallback, domain.NewInvalidInputError("assessment result is required")
	}
	if s.provider == nil {
		return AdviceConfigFallback, domain.NewAIUnavailableError("no completion provider is configured")
	}

	prompt := BuildAdvicePrompt(result)
	advice, err := s.provider.Generate(ctx, prompt, domain.GenerateOptions{Safety: domain.SafetyBlockMediumAndAbove})
	if err != nil {
		classified := err
		if !domain.IsCode(err, domain.ErrSafetyBlocked) && !domain.IsCode(err, domain.ErrLLMServiceError) && !domain.IsCode(err, domain.ErrAIUnavailable) {
			classified = domain.NewLLMServiceError(err)
		}
		logger.Get().Error("Advice synthesis failed", zap.String("riskTier", string(result.RiskTier)), zap.Error(classified))
		return AdviceFallback, classified
	}
	return strings.TrimSpace(advice), nil
}

// BuildAdvicePrompt renders the core data points of a result into the advice prompt.
func BuildAdvicePrompt(result *domain.AssessmentResult) string {
	var points strings.Builder
	fmt.Fprintf(&points, "\nMức độ nguy cơ tổng quan: %s (%s)", domain.RiskTierLabel(result.RiskTier), domain.RiskTierDescription(result.RiskTier))
	fmt.Fprintf(&points, "\nĐiểm có trọng số: %.1f / %.1f", result.WeightedScore, result.MaxPossibleWeightedScore)

	top := domain.TopCategories(result, adviceAttentionPercentage, adviceTopCategories)
	if len(top) > 0 {
		names := make([]string, 0, len(top))
		for _, c := range top {
			names = append(names, c.Name)
		}
		fmt.Fprintf(&points, "\nCác lĩnh vực chính cần chú ý (dựa trên điểm số): %s.", strings.Join(names, ", "))
	}
	if result.HasUrgentFlags() {
		fmt.Fprintf(&points, "\nCÁC CẢNH BÁO KHẨN CẤP: %s.", strings.Join(result.UrgentFlags, "; "))
	}

	return fmt.Sprintf(`Là DadMind AI, một chuyên gia tâm lý đồng cảm, hãy phân tích các dữ liệu cốt lõi từ kết quả bài test tâm lý của một người cha.
Dưới đây là các điểm dữ liệu chính:
---
%s
---

Dựa trên các ĐIỂM DỮ LIỆU CỐT LÕI này, hãy thực hiện các yêu cầu sau:
1.  Bắt đầu bằng một đoạn PHÂN TÍCH VÀ DIỄN GIẢI (khoảng 3-5 câu) về tình trạng của người cha một cách đồng cảm, sâu sắc và chuyên nghiệp. Hãy làm rõ những điểm chính mà các dữ liệu trên cho thấy.
2.  Sau đó, cung cấp từ 1 đến 2 lời khuyên THÊM, ĐỘC ĐÁO, SÁNG TẠO và THỰC TẾ (không phải là các lời khuyên sức khỏe tâm thần chung chung như "ngủ đủ giấc", "ăn uống lành mạnh" hay "tập thể dục"). Các lời khuyên này nên tập trung vào những thách thức hoặc cơ hội đặc biệt dành cho một người cha, có thể là các hoạt động cụ thể, cách thay đổi tư duy, hoặc cách kết nối mới với gia đình/con cái.
3.  Nếu có "CẢNH BÁO KHẨN CẤP", hãy nhấn mạnh tầm quan trọng của việc tìm kiếm sự hỗ trợ chuyên nghiệp ngay lập tức một cách khéo léo trong phần phân tích hoặc lời khuyên của bạn.
4.  Kết thúc bằng một lời động viên ngắn gọn, chân thành và đầy hy vọng (1-2 câu).

YÊU CẦU QUAN TRỌNG VỀ ĐỊNH DẠNG VÀ GIỌNG VĂN:
- Giữ giọng văn cực kỳ thấu cảm, ấm áp, và chuyên nghiệp.
- Đảm bảo lời khuyên mới thực sự khác biệt và bổ sung giá trị.
- Sử dụng định dạng Markdown: 
    - Các đoạn văn cách nhau bằng một dòng trống.
    - Các mục lời khuyên mới (phần 2) phải bắt đầu bằng dấu gạch ngang và một khoảng trắng (ví dụ: "- Lời khuyên...").
    - Sử dụng **in đậm** cho những từ hoặc cụm từ cần nhấn mạnh.
    - Sử dụng *in nghiêng* cho những thuật ngữ hoặc tên riêng (nếu có).
- Không sử dụng HTML.
- Tránh các câu hỏi trực tiếp cho người dùng trong phản hồi của bạn.
`, points.String())
}

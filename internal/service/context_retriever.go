package service

import (
	"context"
	"fmt"
	"strings"

	"dadmind/internal/domain"
	"dadmind/internal/logger"

	"go.uber.org/zap"
)

// NoRelevantContext is the reply the model gives when no passage applies.
const NoRelevantContext = "KHONG_TIM_THAY_CONTEXT_LIEN_QUAN"

// ContextRetriever extracts the reference material relevant to a query.
type ContextRetriever interface {
	// Retrieve returns the excerpt and true, or "" and false when nothing
	// relevant was found. A provider failure is returned as a RETRIEVAL_ERROR.
	Retrieve(ctx context.Context, query string, docs []domain.KnowledgeDocument) (string, bool, error)
}

type contextRetriever struct {
	provider        domain.CompletionProvider
	maxCharsPerDoc  int
	maxContextChars int
}

func NewContextRetriever(provider domain.CompletionProvider, maxCharsPerDoc, maxContextChars int) ContextRetriever {
	return &contextRetriever{
		provider:        provider,
		maxCharsPerDoc:  maxCharsPerDoc,
		maxContextChars: maxContextChars,
	}
}

func (r *contextRetriever) Retrieve(ctx context.Context, query string, docs []domain.KnowledgeDocument) (string, bool, error) {
	prompt := buildRetrievalPrompt(query, docs, r.maxCharsPerDoc, r.maxContextChars)

	out, err := r.provider.Generate(ctx, prompt, domain.GenerateOptions{})
	if err != nil {
		logger.Get().Warn("Context retrieval failed", zap.Error(err))
		return "", false, domain.NewRetrievalError(err)
	}

	excerpt := strings.TrimSpace(out)
	if excerpt == "" || excerpt == NoRelevantContext {
		logger.Get().Debug("No relevant knowledge base context for query")
		return "", false, nil
	}
	return excerpt, true, nil
}

func buildRetrievalPrompt(query string, docs []domain.KnowledgeDocument, maxCharsPerDoc, maxContextChars int) string {
	var docsBlock strings.Builder
	for _, d := range docs {
		if d.Text == "" {
			fmt.Fprintf(&docsBlock, "Tài liệu %q không thể tải hoặc không có nội dung.\n\n", d.Name)
			continue
		}
		fmt.Fprintf(&docsBlock, "Nội dung từ tài liệu %q:\n\"\"\"\n%s\n\"\"\"\n\n", d.Name, truncateRunes(d.Text, maxCharsPerDoc))
	}

	return fmt.Sprintf(`Bạn là một trợ lý thông minh có nhiệm vụ xử lý câu hỏi của người dùng và một bộ tài liệu kiến thức tâm lý được cung cấp.
Nhiệm vụ của bạn là:
1. Phân tích kỹ câu hỏi của người dùng.
2. Rà soát TOÀN BỘ các tài liệu kiến thức được cung cấp để tìm ra những thông tin, đoạn trích, hoặc ý chính có liên quan MẬT THIẾT NHẤT để trả lời câu hỏi đó.
3. Trích xuất hoặc tổng hợp ngắn gọn (dưới %[1]d ký tự) những thông tin này.
4. Trả về CHỈ phần thông tin đã trích xuất/tổng hợp này. KHÔNG thêm bất kỳ lời giải thích, giới thiệu, hay câu hỏi gốc của người dùng vào kết quả của bạn.
5. Nếu bạn không tìm thấy bất kỳ thông tin nào trực tiếp liên quan trong tài liệu, hãy trả về CHÍNH XÁC chuỗi: "%[2]s"

Các tài liệu kiến thức được cung cấp :
%[3]s
Câu hỏi của người dùng:
"""
%[4]s
"""

Kết quả của bạn (CHỈ LÀ PHẦN THÔNG TIN TRÍCH XUẤT/TỔNG HỢP, hoặc "%[2]s"):`,
		maxContextChars, NoRelevantContext, docsBlock.String(), query)
}

func truncateRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

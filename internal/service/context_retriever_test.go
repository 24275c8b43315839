package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"dadmind/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var retrievalDocs = []domain.KnowledgeDocument{
	{Name: "Tâm Lý Trị Liệu", Text: strings.Repeat("a", 50)},
	{Name: "Tâm Lý Đại Cương"},
}

func TestContextRetriever_Found(t *testing.T) {
	provider := new(MockCompletionProvider)
	provider.On("Generate", mock.Anything, mock.AnythingOfType("string"), domain.GenerateOptions{}).
		Return("  Thở bụng giúp thư giãn.\n", nil).Once()

	r := NewContextRetriever(provider, 10, 3800)
	excerpt, found, err := r.Retrieve(context.Background(), "Làm sao để thư giãn?", retrievalDocs)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Thở bụng giúp thư giãn.", excerpt)
	provider.AssertExpectations(t)
}

func TestContextRetriever_NoRelevantContext(t *testing.T) {
	for name, reply := range map[string]string{
		"sentinel":        NoRelevantContext,
		"padded sentinel": "\n" + NoRelevantContext + "  ",
		"empty":           "   ",
	} {
		t.Run(name, func(t *testing.T) {
			provider := new(MockCompletionProvider)
			provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(reply, nil)

			excerpt, found, err := NewContextRetriever(provider, 100, 3800).Retrieve(context.Background(), "weather?", retrievalDocs)
			require.NoError(t, err)
			assert.False(t, found)
			assert.Empty(t, excerpt)
		})
	}
}

func TestContextRetriever_ProviderFailure(t *testing.T) {
	provider := new(MockCompletionProvider)
	provider.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("rate limited"))

	excerpt, found, err := NewContextRetriever(provider, 100, 3800).Retrieve(context.Background(), "q", retrievalDocs)
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ErrRetrieval))
	assert.False(t, found)
	assert.Empty(t, excerpt)
}

func TestBuildRetrievalPrompt(t *testing.T) {
	docs := []domain.KnowledgeDocument{
		{Name: "Doc", Text: "ĐĐĐĐĐĐĐĐĐĐĐĐ"},
		{Name: "Missing"},
	}
	prompt := buildRetrievalPrompt("Con tôi hay khóc đêm", docs, 5, 3800)

	assert.Contains(t, prompt, "Nội dung từ tài liệu \"Doc\":\n\"\"\"\nĐĐĐĐĐ\n\"\"\"")
	assert.NotContains(t, prompt, "ĐĐĐĐĐĐ")
	assert.Contains(t, prompt, "Tài liệu \"Missing\" không thể tải hoặc không có nội dung.")
	assert.Contains(t, prompt, "\"\"\"\nCon tôi hay khóc đêm\n\"\"\"")
	assert.Contains(t, prompt, "dưới 3800 ký tự")
	assert.Contains(t, prompt, NoRelevantContext)
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "abc", truncateRunes("abc", 5))
	assert.Equal(t, "ab", truncateRunes("abc", 2))
	assert.Equal(t, "Tâm", truncateRunes("Tâm Lý", 3))
	assert.Equal(t, "abc", truncateRunes("abc", 0))
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatSession(t *testing.T) {
	now := time.Date(2025, 1, 2, 9, 5, 0, 0, time.UTC)
	s := NewChatSession("s1", now)

	assert.Equal(t, DefaultSessionTitle, s.Title)
	require.Len(t, s.Messages, 1)
	assert.Equal(t, WelcomeMessageID, s.Messages[0].ID)
	assert.Equal(t, MessageKindWelcome, s.Messages[0].Kind)
	assert.Empty(t, s.HistoryTurns())
	assert.False(t, s.HasUserMessage())
}

func TestDeriveTitle(t *testing.T) {
	created := time.Date(2025, 1, 2, 9, 5, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want string
	}{
		{"short", "Xin chào", "Xin chào"},
		{"exactly limit", "123456789012345678901234567890", "123456789012345678901234567890"},
		{"truncated", "How do I help my baby sleep through the night?", "How do I help my baby sleep th..."},
		{"multibyte under limit", "Tôi thấy mệt mỏi và căng thẳng", "Tôi thấy mệt mỏi và căng thẳng"},
		{"whitespace", "   ", "Chat 09:05"},
		{"trailing space at cut", "abcdefghijklmnopqrstuvwxyz123 and more", "abcdefghijklmnopqrstuvwxyz123..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.text, created))
		})
	}
}

func TestHistoryTurns(t *testing.T) {
	now := time.Now()
	s := NewChatSession("s1", now)
	s.Append(ChatMessage{ID: "u1", Sender: SenderUser, Kind: MessageKindChat, Text: "Hello", Timestamp: now})
	s.Append(ChatMessage{ID: "e1", Sender: SenderBot, Kind: MessageKindError, Text: ChatErrorPrefix + "boom", Timestamp: now})
	s.Append(ChatMessage{ID: "u2", Sender: SenderUser, Kind: MessageKindChat, Text: "Are you there?", Timestamp: now})
	s.Append(ChatMessage{ID: "b1", Sender: SenderBot, Kind: MessageKindChat, Text: "Yes", Timestamp: now})
	s.Append(ChatMessage{ID: "b2", Sender: SenderBot, Kind: MessageKindChat, Text: "", Timestamp: now})
	s.Append(ChatMessage{ID: "x1", Sender: SenderExpert, Kind: MessageKindChat, Text: "Expert note", Timestamp: now})
	s.Append(SystemMessage("sys1", KnowledgeReadyText, now))

	turns := s.HistoryTurns()

	assert.Equal(t, []Turn{
		{Role: TurnRoleUser, Text: "Hello\n\nAre you there?"},
		{Role: TurnRoleModel, Text: "Yes"},
	}, turns)
}

func TestChatSession_ReplaceTextAndClone(t *testing.T) {
	now := time.Now()
	s := NewChatSession("s1", now)
	s.Append(ChatMessage{ID: "b1", Sender: SenderBot, Kind: MessageKindChat, Timestamp: now})

	clone := s.Clone()
	later := now.Add(time.Second)
	msg, ok := s.ReplaceText("b1", "Hi", later)

	require.True(t, ok)
	assert.Equal(t, "Hi", msg.Text)
	assert.Equal(t, later, s.UpdatedAt)
	assert.Equal(t, "", clone.Messages[1].Text)

	_, ok = s.ReplaceText("missing", "x", later)
	assert.False(t, ok)
}

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSendMessage(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateSendMessage("Xin chào"))
	assert.Empty(t, v.ValidateSendMessage(strings.Repeat("ư", MaxMessageLength)))

	errs := v.ValidateSendMessage("  \n ")
	require.Len(t, errs, 1)
	assert.Equal(t, "text", errs[0].Field)
	assert.Equal(t, "field is required", errs[0].Message)

	errs = v.ValidateSendMessage(strings.Repeat("a", MaxMessageLength+1))
	require.Len(t, errs, 1)
	assert.Equal(t, MaxMessageLength+1, errs[0].Value)
}

func TestValidateID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateID("session_id", "01ARZ3NDEKTSV4RRFFQ69G5FAV"))

	tests := []struct {
		name string
		id   string
		msg  string
	}{
		{"empty", "", "field is required"},
		{"lowercase", "01arz3ndektsv4rrffq69g5fav", "invalid format"},
		{"short", "01ARZ3NDEKTSV4RRFFQ69G5FA", "invalid format"},
		{"excluded letter", "01ARZ3NDEKTSV4RRFFQ69G5FAU", "invalid format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := v.ValidateID("session_id", tt.id)
			require.Len(t, errs, 1)
			assert.Equal(t, "session_id", errs[0].Field)
			assert.Equal(t, tt.msg, errs[0].Message)
		})
	}
}

func TestValidateClientID(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateClientID("anonymous"))
	assert.Empty(t, v.ValidateClientID("browser-42_a"))
	assert.Len(t, v.ValidateClientID("bad id"), 1)
	assert.Len(t, v.ValidateClientID(strings.Repeat("a", MaxClientIDLength+1)), 1)
}

func TestValidateAnswers(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateAnswers(map[string]string{"q1": "q1o1", "q99": "q99o2"}))

	errs := v.ValidateAnswers(nil)
	require.Len(t, errs, 1)
	assert.Equal(t, "answers", errs[0].Field)

	errs = v.ValidateAnswers(map[string]string{"q1": ""})
	require.Len(t, errs, 1)
	assert.Equal(t, "answers.q1", errs[0].Field)

	errs = v.ValidateAnswers(map[string]string{"q1; DROP": "q1o1"})
	require.Len(t, errs, 1)
	assert.Equal(t, "answers", errs[0].Field)
}

package domain

import "context"

// TurnRole is the author of a prior turn as the model sees it.
type TurnRole string

const (
	TurnRoleUser  TurnRole = "user"
	TurnRoleModel TurnRole = "model"
)

// Turn is one prior exchange passed to a chat handle.
type Turn struct {
	Role TurnRole
	Text string
}

// StreamChunk carries one incremental text delta or the error that ended the stream.
type StreamChunk struct {
	Text string
	Err  error
}

// ChatHandle is a stateful multi-turn conversation with the model.
type ChatHandle interface {
	// SendMessageStream sends one turn made of parts and returns the deltas of
	// the answer. The channel is closed when the stream ends; a failure is
	// delivered as a final chunk with Err set.
	SendMessageStream(ctx context.Context, parts []string) (<-chan StreamChunk, error)
}

// SafetyLevel selects how aggressively the provider filters a response.
type SafetyLevel int

const (
	SafetyDefault SafetyLevel = iota
	// SafetyBlockMediumAndAbove blocks harassment, hate, sexual and dangerous
	// content at medium severity or above.
	SafetyBlockMediumAndAbove
)

// GenerateOptions tunes a one-shot completion.
type GenerateOptions struct {
	Safety      SafetyLevel
	Temperature *float64
}

// CompletionProvider is the generative model collaborator.
type CompletionProvider interface {
	NewChat(systemInstruction string, history []Turn) (ChatHandle, error)
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

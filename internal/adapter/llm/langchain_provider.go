package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"dadmind/internal/domain"
	"dadmind/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

const defaultTimeout = 60 * time.Second

// LangchainProvider implements domain.CompletionProvider on langchaingo models.
// guarded is the model configured with the provider's safety thresholds; it
// serves every call that asks for SafetyBlockMediumAndAbove.
type LangchainProvider struct {
	model       llms.Model
	guarded     llms.Model
	timeout     time.Duration
	temperature float64
}

// NewLangchainProvider wraps the given models. guarded may be nil, in which
// case model serves guarded calls as well.
func NewLangchainProvider(model, guarded llms.Model, timeout time.Duration, temperature float64) *LangchainProvider {
	if guarded == nil {
		guarded = model
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &LangchainProvider{model: model, guarded: guarded, timeout: timeout, temperature: temperature}
}

// Generate issues a single non-streaming completion.
func (p *LangchainProvider) Generate(ctx context.Context, prompt string, opts domain.GenerateOptions) (string, error) {
	l := logger.Get()

	model := p.model
	if opts.Safety == domain.SafetyBlockMediumAndAbove {
		model = p.guarded
	}
	temperature := p.temperature
	if opts.Temperature != nil {
		temperature = *opts.Temperature
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := model.GenerateContent(ctx,
		[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
		llms.WithTemperature(temperature),
	)
	if err != nil {
		l.Error("LLM generate call failed", zap.Error(err))
		return "", classifyError(err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.NewLLMServiceError(errors.New("empty response from model"))
	}
	choice := resp.Choices[0]
	if isSafetyStop(choice.StopReason) {
		return "", domain.NewSafetyBlockedError(fmt.Errorf("finish reason %s", choice.StopReason))
	}
	return stripThinking(choice.Content), nil
}

// NewChat creates a handle primed with the system instruction and prior turns.
func (p *LangchainProvider) NewChat(systemInstruction string, history []domain.Turn) (domain.ChatHandle, error) {
	messages := make([]llms.MessageContent, 0, len(history)+1)
	if systemInstruction != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, systemInstruction))
	}
	for _, turn := range history {
		switch turn.Role {
		case domain.TurnRoleUser:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, turn.Text))
		case domain.TurnRoleModel:
			messages = append(messages, llms.TextParts(llms.ChatMessageTypeAI, turn.Text))
		default:
			return nil, fmt.Errorf("unknown turn role %q", turn.Role)
		}
	}
	return &chatHandle{provider: p, messages: messages}, nil
}

type chatHandle struct {
	provider *LangchainProvider

	mu       sync.Mutex
	messages []llms.MessageContent
}

// SendMessageStream streams the answer to one turn. The turn and the full
// answer join the handle's history only when the stream succeeds.
func (h *chatHandle) SendMessageStream(ctx context.Context, parts []string) (<-chan domain.StreamChunk, error) {
	if len(parts) == 0 {
		return nil, domain.NewInvalidInputError("message has no parts")
	}

	h.mu.Lock()
	messages := append(append([]llms.MessageContent(nil), h.messages...), llms.TextParts(llms.ChatMessageTypeHuman, parts...))
	h.mu.Unlock()

	out := make(chan domain.StreamChunk)
	go func() {
		defer close(out)

		ctx, cancel := context.WithTimeout(ctx, h.provider.timeout)
		defer cancel()

		var received strings.Builder
		resp, err := h.provider.model.GenerateContent(ctx, messages,
			llms.WithTemperature(h.provider.temperature),
			llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				if len(chunk) == 0 {
					return nil
				}
				received.Write(chunk)
				select {
				case out <- domain.StreamChunk{Text: string(chunk)}:
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}),
		)
		if err != nil {
			logger.Get().Error("LLM stream failed", zap.Error(err))
			out <- domain.StreamChunk{Err: classifyError(err)}
			return
		}

		answer := received.String()
		if resp != nil && len(resp.Choices) > 0 {
			choice := resp.Choices[0]
			if isSafetyStop(choice.StopReason) {
				out <- domain.StreamChunk{Err: domain.NewSafetyBlockedError(fmt.Errorf("finish reason %s", choice.StopReason))}
				return
			}
			// Some providers return the answer without invoking the streaming callback.
			if answer == "" && choice.Content != "" {
				answer = choice.Content
				out <- domain.StreamChunk{Text: answer}
			}
		}

		h.mu.Lock()
		h.messages = append(h.messages, messages[len(messages)-1], llms.TextParts(llms.ChatMessageTypeAI, answer))
		h.mu.Unlock()
	}()
	return out, nil
}

func isSafetyStop(reason string) bool {
	return strings.Contains(strings.ToUpper(reason), "SAFETY")
}

// classifyError separates safety blocks from transport failures.
func classifyError(err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "safety") || strings.Contains(msg, "blocked") {
		return domain.NewSafetyBlockedError(err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.NewLLMServiceError(fmt.Errorf("LLM request timed out: %w", err))
	}
	return domain.NewLLMServiceError(err)
}

// stripThinking removes a leading <think>...</think> block some local models emit.
func stripThinking(s string) string {
	cleaned := strings.TrimSpace(s)
	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd > thinkStart {
			cleaned = strings.TrimSpace(cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):])
		}
	}
	return cleaned
}

var _ domain.CompletionProvider = (*LangchainProvider)(nil)

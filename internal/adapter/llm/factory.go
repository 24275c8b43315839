package llm

import (
	"context"
	"fmt"

	"dadmind/internal/config"
	"dadmind/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewModelsFromConfig builds the default model and the safety-guarded model
// for the configured provider. Only Gemini exposes per-request harm
// thresholds, so the other providers return the same model twice.
func NewModelsFromConfig(ctx context.Context, cfg config.LLMConfig) (llms.Model, llms.Model, error) {
	if !cfg.Enabled() {
		return nil, nil, domain.NewAIUnavailableError("API key is not configured")
	}

	switch cfg.Provider {
	case config.ProviderGoogleAI:
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		guarded, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
			googleai.WithHarmThreshold(googleai.HarmBlockMediumAndAbove),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create guarded Gemini client: %w", err)
		}
		return model, guarded, nil

	case config.ProviderOllama:
		model, err := ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.Server),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Ollama client: %w", err)
		}
		return model, model, nil

	case config.ProviderOpenAI:
		opts := []openai.Option{openai.WithToken(cfg.APIKey), openai.WithModel(cfg.Model)}
		if cfg.Server != "" {
			opts = append(opts, openai.WithBaseURL(cfg.Server))
		}
		model, err := openai.New(opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OpenAI client: %w", err)
		}
		return model, model, nil

	default:
		return nil, nil, fmt.Errorf("unsupported llm provider %q", cfg.Provider)
	}
}

// NewProviderFromConfig is NewModelsFromConfig wrapped in a LangchainProvider.
func NewProviderFromConfig(ctx context.Context, cfg config.LLMConfig) (*LangchainProvider, error) {
	model, guarded, err := NewModelsFromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewLangchainProvider(model, guarded, cfg.Timeout, cfg.Temperature), nil
}

package ai

import (
	"context"
	"fmt"

	"hirelink/internal/config"
	domainai "hirelink/internal/domain/ai"
	"hirelink/internal/metrics"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Providers bundles the model services selected by configuration. A service
// without credentials is replaced by one that always reports
// ErrUnavailable, so callers apply their fallback policies.
type Providers struct {
	Embedder    domainai.Embedder
	Chat        domainai.ChatModel
	Transcriber domainai.Transcriber
}

func NewProviders(ctx context.Context, cfg config.AIConfig, m *metrics.Metrics, logger *zap.Logger) (Providers, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	guard := NewGuard(cfg.RequestsPerSecond, cfg.Burst, cfg.Timeout, m, logger)

	var gemini *genai.Client
	if cfg.GeminiAPIKey != "" && (cfg.EmbeddingProvider == config.ProviderGemini || cfg.LLMProvider == config.ProviderGemini) {
		c, err := NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return Providers{}, err
		}
		gemini = c
	}

	p := Providers{}

	switch {
	case cfg.EmbeddingProvider == config.ProviderGemini && gemini != nil:
		p.Embedder = NewGeminiEmbedder(gemini, cfg.EmbeddingModel, cfg.EmbeddingDimensions, guard)
	case cfg.EmbeddingProvider == config.ProviderOpenAI && cfg.OpenAIAPIKey != "":
		p.Embedder = NewOpenAIEmbedder(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.EmbeddingModel, cfg.EmbeddingDimensions, guard)
	default:
		logger.Warn("embedding provider has no credentials, candidate indexing disabled", zap.String("provider", cfg.EmbeddingProvider))
		p.Embedder = Unavailable{Service: "embedding"}
	}

	switch {
	case cfg.LLMProvider == config.ProviderGemini && gemini != nil:
		p.Chat = NewGeminiChat(gemini, cfg.LLMModel, guard)
	case cfg.LLMProvider == config.ProviderOpenAI && cfg.OpenAIAPIKey != "":
		p.Chat = NewOpenAIChat(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.LLMModel, guard)
	default:
		logger.Warn("chat provider has no credentials, interviews use the question bank", zap.String("provider", cfg.LLMProvider))
		p.Chat = Unavailable{Service: "chat"}
	}

	if cfg.OpenAIAPIKey != "" {
		p.Transcriber = NewOpenAITranscriber(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.TranscriptionModel, guard)
	} else {
		logger.Warn("transcription has no credentials, audio answers are disabled")
		p.Transcriber = Unavailable{Service: "transcription"}
	}

	return p, nil
}

// Unavailable implements every model contract by failing with
// ErrUnavailable.
type Unavailable struct {
	Service string
}

func (u Unavailable) err() error {
	return fmt.Errorf("%w: %s is not configured", domainai.ErrUnavailable, u.Service)
}

func (u Unavailable) Model() string { return "" }

func (u Unavailable) Embed(context.Context, string) ([]float32, error) { return nil, u.err() }

func (u Unavailable) Complete(context.Context, string, string) (string, error) { return "", u.err() }

func (u Unavailable) Transcribe(context.Context, string, []byte) (string, error) { return "", u.err() }

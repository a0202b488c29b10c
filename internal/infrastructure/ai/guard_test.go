package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"hirelink/internal/config"
	domainai "hirelink/internal/domain/ai"
	"hirelink/internal/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "openai rate limit", err: &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, want: domainai.ErrUnavailable},
		{name: "openai bad request", err: &openai.APIError{HTTPStatusCode: http.StatusBadRequest}, want: domainai.ErrInvalidInput},
		{name: "openai server", err: &openai.RequestError{HTTPStatusCode: http.StatusBadGateway, Err: errors.New("bad gateway")}, want: domainai.ErrUnavailable},
		{name: "gemini quota", err: genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED"}, want: domainai.ErrUnavailable},
		{name: "gemini invalid", err: fmt.Errorf("wrapped: %w", genai.APIError{Code: http.StatusBadRequest}), want: domainai.ErrInvalidInput},
		{name: "deadline", err: context.DeadlineExceeded, want: domainai.ErrUnavailable},
		{name: "transport", err: errors.New("dial tcp: connection refused"), want: domainai.ErrUnavailable},
		{name: "already classified", err: fmt.Errorf("%w: junk", domainai.ErrInternal), want: domainai.ErrInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
	assert.NoError(t, classify(nil))
}

func TestGuard_DoRecordsOutcome(t *testing.T) {
	m := metrics.New()
	g := NewGuard(0, 1, time.Second, m, nil)

	err := g.Do(context.Background(), "chat", "openai", func(context.Context) error { return nil })
	require.NoError(t, err)

	err = g.Do(context.Background(), "chat", "openai", func(context.Context) error {
		return &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable}
	})
	assert.ErrorIs(t, err, domainai.ErrUnavailable)

	n, err := testutil.GatherAndCount(m.Registry(), "hirelink_ai_calls_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGuard_Timeout(t *testing.T) {
	g := NewGuard(0, 1, 10*time.Millisecond, nil, nil)
	err := g.Do(context.Background(), "chat", "openai", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, domainai.ErrUnavailable)
}

func TestNewProviders_WithoutCredentials(t *testing.T) {
	p, err := NewProviders(context.Background(), config.AIConfig{
		EmbeddingProvider: config.ProviderGemini,
		LLMProvider:       config.ProviderOpenAI,
	}, nil, nil)
	require.NoError(t, err)

	_, err = p.Embedder.Embed(context.Background(), "text")
	assert.ErrorIs(t, err, domainai.ErrUnavailable)
	_, err = p.Chat.Complete(context.Background(), "", "prompt")
	assert.ErrorIs(t, err, domainai.ErrUnavailable)
	_, err = p.Transcriber.Transcribe(context.Background(), "a.wav", []byte{1})
	assert.ErrorIs(t, err, domainai.ErrUnavailable)
}

func TestEmbedders_RejectEmptyInput(t *testing.T) {
	e := NewOpenAIEmbedder("key", "", "text-embedding-3-small", 768, nil)
	_, err := e.Embed(context.Background(), "  ")
	assert.ErrorIs(t, err, domainai.ErrInvalidInput)
}

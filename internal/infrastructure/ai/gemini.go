package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainai "hirelink/internal/domain/ai"

	"google.golang.org/genai"
)

const providerGemini = "gemini"

func NewGeminiClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return client, nil
}

type GeminiEmbedder struct {
	client     *genai.Client
	model      string
	dimensions int32
	guard      *Guard
}

func NewGeminiEmbedder(client *genai.Client, model string, dimensions int, guard *Guard) *GeminiEmbedder {
	return &GeminiEmbedder{client: client, model: model, dimensions: int32(dimensions), guard: guard}
}

func (e *GeminiEmbedder) Model() string { return e.model }

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", domainai.ErrInvalidInput)
	}

	var out []float32
	err := e.guard.Do(ctx, "embedding", providerGemini, func(ctx context.Context) error {
		resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), &genai.EmbedContentConfig{
			OutputDimensionality: &e.dimensions,
		})
		if err != nil {
			return err
		}
		if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil || len(resp.Embeddings[0].Values) == 0 {
			return fmt.Errorf("%w: empty embedding response", domainai.ErrInternal)
		}
		out = resp.Embeddings[0].Values
		return nil
	})
	return out, err
}

type GeminiChat struct {
	client *genai.Client
	model  string
	guard  *Guard
}

func NewGeminiChat(client *genai.Client, model string, guard *Guard) *GeminiChat {
	return &GeminiChat{client: client, model: model, guard: guard}
}

func (c *GeminiChat) Complete(ctx context.Context, system, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", fmt.Errorf("%w: empty prompt", domainai.ErrInvalidInput)
	}

	cfg := &genai.GenerateContentConfig{}
	if system = strings.TrimSpace(system); system != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	var out string
	err := c.guard.Do(ctx, "chat", providerGemini, func(ctx context.Context) error {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
		if err != nil {
			return err
		}
		text := joinCandidateText(resp)
		if text == "" {
			return fmt.Errorf("%w: gemini returned empty response", domainai.ErrInternal)
		}
		out = text
		return nil
	})
	return out, err
}

func joinCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(text)
		}
	}
	return strings.TrimSpace(b.String())
}

package ai

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	domainai "hirelink/internal/domain/ai"

	"github.com/sashabaranov/go-openai"
)

const providerOpenAI = "openai"

func newOpenAIClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

type OpenAIEmbedder struct {
	client     *openai.Client
	model      string
	dimensions int
	guard      *Guard
}

func NewOpenAIEmbedder(apiKey, baseURL, model string, dimensions int, guard *Guard) *OpenAIEmbedder {
	return &OpenAIEmbedder{client: newOpenAIClient(apiKey, baseURL), model: model, dimensions: dimensions, guard: guard}
}

func (e *OpenAIEmbedder) Model() string { return e.model }

func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", domainai.ErrInvalidInput)
	}

	var out []float32
	err := e.guard.Do(ctx, "embedding", providerOpenAI, func(ctx context.Context) error {
		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input:      []string{text},
			Model:      openai.EmbeddingModel(e.model),
			Dimensions: e.dimensions,
		})
		if err != nil {
			return err
		}
		if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
			return fmt.Errorf("%w: empty embedding response", domainai.ErrInternal)
		}
		out = resp.Data[0].Embedding
		return nil
	})
	return out, err
}

type OpenAIChat struct {
	client *openai.Client
	model  string
	guard  *Guard
}

func NewOpenAIChat(apiKey, baseURL, model string, guard *Guard) *OpenAIChat {
	return &OpenAIChat{client: newOpenAIClient(apiKey, baseURL), model: model, guard: guard}
}

func (c *OpenAIChat) Complete(ctx context.Context, system, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: empty prompt", domainai.ErrInvalidInput)
	}

	var out string
	err := c.guard.Do(ctx, "chat", providerOpenAI, func(ctx context.Context) error {
		resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.model,
			Temperature: 0.4,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: prompt},
			},
		})
		if err != nil {
			return err
		}
		if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
			return fmt.Errorf("%w: empty completion", domainai.ErrInternal)
		}
		out = strings.TrimSpace(resp.Choices[0].Message.Content)
		return nil
	})
	return out, err
}

type OpenAITranscriber struct {
	client *openai.Client
	model  string
	guard  *Guard
}

func NewOpenAITranscriber(apiKey, baseURL, model string, guard *Guard) *OpenAITranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &OpenAITranscriber{client: newOpenAIClient(apiKey, baseURL), model: model, guard: guard}
}

// Transcribe sends audio to the speech-to-text endpoint. filename only
// tells the API which container format to expect.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, filename string, audio []byte) (string, error) {
	if len(audio) == 0 {
		return "", fmt.Errorf("%w: empty audio", domainai.ErrInvalidInput)
	}
	if filename == "" {
		filename = "answer.webm"
	}

	var out string
	err := t.guard.Do(ctx, "transcription", providerOpenAI, func(ctx context.Context) error {
		resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    t.model,
			FilePath: filename,
			Reader:   bytes.NewReader(audio),
			Format:   openai.AudioResponseFormatJSON,
		})
		if err != nil {
			return err
		}
		out = strings.TrimSpace(resp.Text)
		return nil
	})
	return out, err
}

// Package ai holds the contracts of the external model services and the
// error kinds every adapter reports.
package ai

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable covers transport failures, timeouts, rate limits and
	// provider-side errors. Callers may fall back or retry later.
	ErrUnavailable = errors.New("ai service unavailable")
	// ErrInvalidInput means the provider rejected the request itself.
	ErrInvalidInput = errors.New("ai service rejected input")
	// ErrInternal means the provider answered but the answer was unusable.
	ErrInternal = errors.New("ai service returned an unusable response")
)

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Model() string
}

// ChatModel completes a single prompt under a system instruction.
type ChatModel interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, filename string, audio []byte) (string, error)
}

// Kind returns the error kind err belongs to, or nil when err is nil.
func Kind(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnavailable):
		return ErrUnavailable
	case errors.Is(err, ErrInvalidInput):
		return ErrInvalidInput
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

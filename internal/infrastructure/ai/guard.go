// Package ai adapts OpenAI-compatible and Gemini APIs to the model
// contracts in internal/domain/ai.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	domainai "hirelink/internal/domain/ai"
	"hirelink/internal/metrics"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// Guard bounds every outbound model call with a shared rate limiter and a
// per-call timeout, and records its outcome.
type Guard struct {
	limiter *rate.Limiter
	timeout time.Duration
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewGuard(rps float64, burst int, timeout time.Duration, m *metrics.Metrics, logger *zap.Logger) *Guard {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst <= 0 {
		burst = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Guard{
		limiter: rate.NewLimiter(limit, burst),
		timeout: timeout,
		metrics: m,
		logger:  logger.Named("ai"),
	}
}

// Do runs fn under the guard. Errors come back wrapped in one of the
// domain error kinds.
func (g *Guard) Do(ctx context.Context, service, provider string, fn func(ctx context.Context) error) error {
	if g == nil {
		return classify(fn(ctx))
	}

	if err := g.limiter.Wait(ctx); err != nil {
		g.metrics.ObserveAICall(service, provider, "throttled", 0)
		return fmt.Errorf("%w: rate limiter: %v", domainai.ErrUnavailable, err)
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	err := classify(fn(ctx))
	took := time.Since(start)

	outcome := "ok"
	switch domainai.Kind(err) {
	case domainai.ErrUnavailable:
		outcome = "unavailable"
	case domainai.ErrInvalidInput:
		outcome = "invalid_input"
	case domainai.ErrInternal:
		outcome = "internal"
	}
	g.metrics.ObserveAICall(service, provider, outcome, took)

	if err != nil {
		g.logger.Warn("model call failed",
			zap.String("service", service),
			zap.String("provider", provider),
			zap.Duration("took", took),
			zap.Error(err),
		)
	} else {
		g.logger.Debug("model call", zap.String("service", service), zap.String("provider", provider), zap.Duration("took", took))
	}
	return err
}

// classify maps provider errors onto the domain kinds. Errors already
// carrying a kind pass through unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domainai.ErrUnavailable) || errors.Is(err, domainai.ErrInvalidInput) || errors.Is(err, domainai.ErrInternal) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", domainai.ErrUnavailable, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %v", kindForStatus(apiErr.HTTPStatusCode), err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("%w: %v", kindForStatus(reqErr.HTTPStatusCode), err)
	}
	var genaiErr genai.APIError
	if errors.As(err, &genaiErr) {
		return fmt.Errorf("%w: %v", kindForStatus(genaiErr.Code), err)
	}

	// transport-level failures (DNS, refused connections, TLS) carry no status.
	return fmt.Errorf("%w: %v", domainai.ErrUnavailable, err)
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusTooManyRequests,
		status == http.StatusRequestTimeout,
		status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		status >= 500,
		status == 0:
		return domainai.ErrUnavailable
	case status >= 400:
		return domainai.ErrInvalidInput
	default:
		return domainai.ErrInternal
	}
}

// Package throttle wraps an LLM service with client-side rate limiting.
//
// Provider APIs enforce request-per-minute quotas and the map phase fans out
// one request per chunk, so an unthrottled run over a long transcript can
// trip the quota immediately. The decorator paces requests with a token
// bucket before they leave the process.
package throttle

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// LLMService decorates another LLM service with proactive throttling.
type LLMService struct {
	inner  driven.LLMService
	bucket *rate.Limiter
}

// Wrap returns a throttled view of inner limited to requestsPerSecond.
// A non-positive rate disables throttling and returns inner unchanged.
func Wrap(inner driven.LLMService, requestsPerSecond float64) driven.LLMService {
	if requestsPerSecond <= 0 {
		return inner
	}
	return &LLMService{
		inner:  inner,
		bucket: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}
}

// Generate waits for a token, then delegates.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.bucket.Wait(ctx); err != nil {
		return "", err
	}
	return s.inner.Generate(ctx, prompt, opts)
}

// Chat waits for a token, then delegates.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := s.bucket.Wait(ctx); err != nil {
		return "", err
	}
	return s.inner.Chat(ctx, messages, opts)
}

// ModelName returns the underlying model name.
func (s *LLMService) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates without consuming a token. Connectivity checks should not
// eat into the inference quota.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close closes the underlying service.
func (s *LLMService) Close() error {
	return s.inner.Close()
}

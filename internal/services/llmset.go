package services

import (
	"context"

	"github.com/claimpilot/claimpilot/internal/llm"
	"github.com/claimpilot/claimpilot/internal/weather"
)

// RateLimiter gates outbound service calls. Satisfied by worker.Limiter.
type RateLimiter interface {
	Wait(ctx context.Context, key string) error
}

// llmService is the shared base for provider-backed adapters
type llmService struct {
	provider llm.Provider
	limiter  RateLimiter
}

func (s llmService) wait(ctx context.Context) error {
	if s.limiter == nil {
		return nil
	}
	return s.limiter.Wait(ctx, s.provider.Name())
}

// NewLLMSet builds the full service set on a single LLM provider plus the
// weather client. The limiter is optional.
func NewLLMSet(provider llm.Provider, weatherClient *weather.Client, limiter RateLimiter) Set {
	base := llmService{provider: provider, limiter: limiter}
	return Set{
		Labels:      &LLMLabelDetector{llmService: base},
		Summarizer:  &LLMSummarizer{llmService: base},
		KeyInfo:     &LLMKeyInfoExtractor{llmService: base},
		Misrep:      &LLMMisrepDetector{llmService: base},
		Weather:     &WeatherAPIVerifier{client: weatherClient, limiter: limiter},
		Synthesizer: &LLMDecisionSynthesizer{llmService: base},
	}
}

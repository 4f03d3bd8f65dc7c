package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/claimpilot/claimpilot/internal/cache"
	"github.com/claimpilot/claimpilot/internal/evidence"
	"github.com/claimpilot/claimpilot/internal/intake"
	"github.com/claimpilot/claimpilot/internal/llm"
	"github.com/claimpilot/claimpilot/internal/metrics"
	"github.com/claimpilot/claimpilot/internal/model"
	"github.com/claimpilot/claimpilot/internal/pipeline"
	"github.com/claimpilot/claimpilot/internal/services"
	"github.com/claimpilot/claimpilot/internal/weather"
	"github.com/claimpilot/claimpilot/internal/worker"
)

// stack bundles everything a command needs to evaluate claims
type stack struct {
	ledger   *evidence.Ledger
	gate     *intake.Gate
	pipeline *pipeline.Pipeline
	emitter  *pipeline.Emitter
	metrics  *metrics.Metrics
}

func (s *stack) Close() {
	if s.ledger != nil {
		_ = s.ledger.Close()
	}
}

// resolveSecrets fills API keys from the conventional environment variables
// when the config leaves them empty
func resolveSecrets(cfg *model.Config) error {
	if cfg.LLM.APIKey == "" {
		switch cfg.LLM.Provider {
		case "openai":
			cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable not set")
			}
		case "anthropic", "claude":
			cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
			if cfg.LLM.APIKey == "" {
				return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
			}
		case "ollama":
			// Ollama doesn't need an API key
			if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
				cfg.LLM.BaseURL = baseURL
			}
		}
	}
	if cfg.Weather.APIKey == "" {
		// Optional: weather verification degrades to unknown without it
		cfg.Weather.APIKey = os.Getenv("WEATHER_API_KEY")
	}
	return nil
}

// buildStack wires the ledger, semantic services, pipeline, and emitter from
// configuration
func buildStack(cfg *model.Config) (*stack, error) {
	if err := resolveSecrets(cfg); err != nil {
		return nil, err
	}

	ledger, err := evidence.Open(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		_ = ledger.Close()
		return nil, err
	}

	weatherCache := cache.NewMemoryCache(cfg.Weather.CacheTTL, 10*time.Minute)
	weatherClient := weather.NewClient(
		cfg.Weather.APIKey,
		cfg.Weather.BaseURL,
		time.Duration(cfg.Weather.Timeout)*time.Second,
		weatherCache,
		cfg.Weather.CacheTTL,
	)

	limiter := worker.NewLimiter(cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)
	svcs := services.NewLLMSet(provider, weatherClient, limiter)

	m := metrics.New()
	return &stack{
		ledger:   ledger,
		gate:     intake.NewGate(ledger),
		pipeline: pipeline.New(svcs, m),
		emitter:  pipeline.NewEmitter(cfg.Output.Dir, cfg.Output.Markdown),
		metrics:  m,
	}, nil
}

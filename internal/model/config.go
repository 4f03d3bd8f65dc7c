package model

import "time"

// Config is the complete configuration for a claimpilot run.
// The pipeline itself holds no global state; everything it needs is
// passed down from here at construction time.
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Weather     WeatherConfig     `yaml:"weather" mapstructure:"weather"`
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
}

// LLMConfig holds provider configuration for the semantic services
type LLMConfig struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for OpenAI/Anthropic (prefer env vars over the config file)
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Timeout per service call, in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// WeatherConfig holds weather corroboration settings
type WeatherConfig struct {
	// APIKey for weatherapi.com; empty disables verification (degrades to unknown)
	APIKey string `yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL override, mainly for tests
	BaseURL string `yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Timeout per history lookup, in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// CacheTTL for history responses (the past doesn't change)
	CacheTTL time.Duration `yaml:"cache_ttl" mapstructure:"cache_ttl"`
}

// StoreConfig holds the evidence fingerprint ledger settings
type StoreConfig struct {
	// Path to the sqlite ledger file
	Path string `yaml:"path" mapstructure:"path"`
}

// OutputConfig controls report emission
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	Markdown bool   `yaml:"markdown" mapstructure:"markdown"`
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
}

// ConcurrencyConfig controls batch evaluation
type ConcurrencyConfig struct {
	Workers           int     `yaml:"workers" mapstructure:"workers"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Weather: WeatherConfig{
			BaseURL:  "http://api.weatherapi.com/v1",
			Timeout:  15,
			CacheTTL: 24 * time.Hour,
		},
		Store: StoreConfig{
			Path: "claimpilot.db",
		},
		Output: OutputConfig{
			Dir:      "./reports",
			Markdown: true,
		},
		Concurrency: ConcurrencyConfig{
			Workers:           4,
			RequestsPerSecond: 2,
			Burst:             5,
		},
	}
}

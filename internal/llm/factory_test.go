package llm

import (
	"strings"
	"testing"
)

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		wantName  string
		wantError bool
	}{
		{
			name:     "openai provider",
			config:   Config{Provider: "openai", APIKey: "sk-test"},
			wantName: "openai",
		},
		{
			name:      "openai without key",
			config:    Config{Provider: "openai"},
			wantError: true,
		},
		{
			name:     "anthropic provider",
			config:   Config{Provider: "anthropic", APIKey: "sk-ant-test"},
			wantName: "anthropic",
		},
		{
			name:     "claude alias",
			config:   Config{Provider: "claude", APIKey: "sk-ant-test"},
			wantName: "anthropic",
		},
		{
			name:     "ollama provider needs no key",
			config:   Config{Provider: "ollama"},
			wantName: "ollama",
		},
		{
			name:      "empty provider",
			config:    Config{},
			wantError: true,
		},
		{
			name:      "unknown provider",
			config:    Config{Provider: "gemini-magic"},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.config)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", p.Name(), tt.wantName)
			}
		})
	}
}

func TestNewProvider_UnknownListsSupported(t *testing.T) {
	_, err := NewProvider(Config{Provider: "bogus"})
	if err == nil || !strings.Contains(err.Error(), "supported") {
		t.Errorf("Expected error naming supported providers, got %v", err)
	}
}

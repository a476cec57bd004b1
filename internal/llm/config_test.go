package llm

import (
	"strings"
	"testing"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfigDisabled(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Enabled() {
		t.Fatal("default config should have no provider")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled config should validate: %v", err)
	}
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name     string
		env      map[string]string
		provider string
	}{
		{"none", nil, ProviderNone},
		{"anthropic only", map[string]string{"ANTHROPIC_API_KEY": "a"}, ProviderAnthropic},
		{"gemini wins", map[string]string{"ANTHROPIC_API_KEY": "a", "GEMINI_API_KEY": "g"}, ProviderGemini},
		{"openai before anthropic", map[string]string{"ANTHROPIC_API_KEY": "a", "OPENAI_API_KEY": "o"}, ProviderOpenAI},
		{"openrouter last", map[string]string{"OPENROUTER_API_KEY": "r"}, ProviderOpenRouter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearKeyEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			found := cfg.Discover()
			if found != (tt.provider != ProviderNone) || cfg.Provider != tt.provider {
				t.Fatalf("Discover() = %v, provider %q, want %q", found, cfg.Provider, tt.provider)
			}
			if found {
				if err := cfg.Validate(); err != nil {
					t.Errorf("discovered config invalid: %v", err)
				}
			}
		})
	}
}

func TestDiscoverKeepsExplicitProvider(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GEMINI_API_KEY", "g")
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	if !cfg.Discover() || cfg.Provider != ProviderMock {
		t.Fatalf("provider = %q, want mock", cfg.Provider)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"mock", func(c *Config) { c.Provider = ProviderMock }, ""},
		{"anthropic with key", func(c *Config) { c.Provider = ProviderAnthropic; c.Anthropic.APIKey = "k" }, ""},
		{"anthropic without key", func(c *Config) { c.Provider = ProviderAnthropic }, "NUMCRAFT_ANTHROPIC_API_KEY"},
		{"openai without key", func(c *Config) { c.Provider = ProviderOpenAI }, "NUMCRAFT_OPENAI_API_KEY"},
		{"gemini without key", func(c *Config) { c.Provider = ProviderGemini }, "NUMCRAFT_GEMINI_API_KEY"},
		{"openrouter without key", func(c *Config) { c.Provider = ProviderOpenRouter }, "NUMCRAFT_OPENROUTER_API_KEY"},
		{"unknown", func(c *Config) { c.Provider = "llama" }, "unknown LLM provider"},
		{"zero attempts", func(c *Config) {
			c.Provider = ProviderGemini
			c.Gemini.APIKey = "k"
			c.Retry.MaxAttempts = 0
		}, "retry attempts"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigModel(t *testing.T) {
	cfg := DefaultConfig()
	for provider, want := range map[string]string{
		ProviderAnthropic:  "claude-haiku",
		ProviderOpenAI:     "gpt-4o-mini",
		ProviderGemini:     "gemini-flash",
		ProviderOpenRouter: "google/gemini-2.0-flash-001",
		ProviderMock:       "mock",
		ProviderNone:       "",
	} {
		cfg.Provider = provider
		if got := cfg.Model(); got != want {
			t.Errorf("Model() for %q = %q, want %q", provider, got, want)
		}
	}
}

package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderNone       = ""
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the LLM provider. Fields carry env tags
// for github.com/caarlos0/env; an empty Provider disables LLM features.
type Config struct {
	Provider string        `env:"NUMCRAFT_LLM_PROVIDER"`
	Timeout  time.Duration `env:"NUMCRAFT_LLM_TIMEOUT" envDefault:"20s"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
}

type AnthropicConfig struct {
	APIKey string `env:"NUMCRAFT_ANTHROPIC_API_KEY"`
	Model  string `env:"NUMCRAFT_ANTHROPIC_MODEL" envDefault:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `env:"NUMCRAFT_OPENAI_API_KEY"`
	Model   string `env:"NUMCRAFT_OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"NUMCRAFT_OPENAI_BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"NUMCRAFT_GEMINI_API_KEY"`
	Model  string `env:"NUMCRAFT_GEMINI_MODEL" envDefault:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"NUMCRAFT_OPENROUTER_API_KEY"`
	Model   string `env:"NUMCRAFT_OPENROUTER_MODEL" envDefault:"google/gemini-2.0-flash-001"`
	BaseURL string `env:"NUMCRAFT_OPENROUTER_BASE_URL"`
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"NUMCRAFT_LLM_RETRY_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"NUMCRAFT_LLM_RETRY_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"NUMCRAFT_LLM_RETRY_MAX_WAIT" envDefault:"8s"`
	Multiplier  float64       `env:"NUMCRAFT_LLM_RETRY_MULTIPLIER" envDefault:"2"`
}

// DefaultConfig mirrors the env defaults, with no provider selected.
func DefaultConfig() Config {
	return Config{
		Timeout:    20 * time.Second,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     8 * time.Second,
			Multiplier:  2,
		},
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ProviderNone
}

// Discover fills in a provider from the vendors' standard API key
// variables when none was selected explicitly. Probe order is Gemini,
// OpenAI, Anthropic, OpenRouter. It reports whether a provider is set.
func (c *Config) Discover() bool {
	if c.Enabled() {
		return true
	}
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.provider
			*p.key = k
			return true
		}
	}
	return false
}

// Model returns the configured model name for the selected provider.
func (c Config) Model() string {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.Model
	case ProviderOpenAI:
		return c.OpenAI.Model
	case ProviderGemini:
		return c.Gemini.Model
	case ProviderOpenRouter:
		return c.OpenRouter.Model
	case ProviderMock:
		return "mock"
	}
	return ""
}

// Validate checks that the selected provider has what it needs.
func (c Config) Validate() error {
	var key, envName string
	switch c.Provider {
	case ProviderNone, ProviderMock:
		return nil
	case ProviderAnthropic:
		key, envName = c.Anthropic.APIKey, "NUMCRAFT_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, envName = c.OpenAI.APIKey, "NUMCRAFT_OPENAI_API_KEY"
	case ProviderGemini:
		key, envName = c.Gemini.APIKey, "NUMCRAFT_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, envName = c.OpenRouter.APIKey, "NUMCRAFT_OPENROUTER_API_KEY"
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", envName, c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

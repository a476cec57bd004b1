package config

import (
	"strings"
	"testing"
	"time"

	"github.com/abhisek/numcraft/internal/llm"
)

type envTestConfig struct {
	Port int `env:"NUMCRAFT_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("NUMCRAFT_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NUMCRAFT_LLM_PROVIDER", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("log settings = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.LLM.Enabled() {
		t.Errorf("LLM should be disabled by default, got %q", cfg.LLM.Provider)
	}
	want := llm.DefaultConfig()
	if cfg.LLM.Timeout != want.Timeout || cfg.LLM.Retry != want.Retry {
		t.Errorf("llm defaults = %+v, want %+v", cfg.LLM, want)
	}
	if cfg.LLM.Anthropic.Model != want.Anthropic.Model || cfg.LLM.OpenRouter.Model != want.OpenRouter.Model {
		t.Errorf("model defaults = %q, %q", cfg.LLM.Anthropic.Model, cfg.LLM.OpenRouter.Model)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NUMCRAFT_DB", "/tmp/x.db")
	t.Setenv("NUMCRAFT_SEED", "42")
	t.Setenv("NUMCRAFT_LOG_LEVEL", "debug")
	t.Setenv("NUMCRAFT_LOG_FORMAT", "json")
	t.Setenv("NUMCRAFT_LLM_PROVIDER", "gemini")
	t.Setenv("NUMCRAFT_GEMINI_API_KEY", "g-key")
	t.Setenv("NUMCRAFT_GEMINI_MODEL", "gemini-2.5-flash")
	t.Setenv("NUMCRAFT_LLM_TIMEOUT", "5s")
	t.Setenv("NUMCRAFT_LLM_RETRY_ATTEMPTS", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DB != "/tmp/x.db" || cfg.Seed != 42 || cfg.LogLevel != "debug" || cfg.LogFormat != "json" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.LLM.Provider != llm.ProviderGemini || cfg.LLM.Gemini.APIKey != "g-key" || cfg.LLM.Gemini.Model != "gemini-2.5-flash" {
		t.Errorf("gemini = %+v", cfg.LLM.Gemini)
	}
	if cfg.LLM.Timeout != 5*time.Second || cfg.LLM.Retry.MaxAttempts != 2 {
		t.Errorf("timeout/attempts = %v/%d", cfg.LLM.Timeout, cfg.LLM.Retry.MaxAttempts)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"log level", map[string]string{"NUMCRAFT_LOG_LEVEL": "loud"}, "log level"},
		{"log format", map[string]string{"NUMCRAFT_LOG_FORMAT": "xml"}, "log format"},
		{"provider without key", map[string]string{"NUMCRAFT_LLM_PROVIDER": "anthropic", "NUMCRAFT_ANTHROPIC_API_KEY": ""}, "llm config"},
		{"seed", map[string]string{"NUMCRAFT_SEED": "-1"}, "parse env"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

// Package coach writes a short note for the player after each battle. An
// LLM drafts it when one is configured; otherwise, or when the call fails,
// a fixed note is derived from the battle's mistake tally.
package coach

import (
	"context"
	"log/slog"

	"github.com/abhisek/numcraft/internal/battle"
	"github.com/abhisek/numcraft/internal/diagnosis"
	"github.com/abhisek/numcraft/internal/llm"
)

// Source records where a Note came from.
type Source string

const (
	SourceLLM      Source = "llm"
	SourceFallback Source = "fallback"
)

// Note is the coaching text shown on the result screen.
type Note struct {
	Headline string `json:"headline"`
	Tip      string `json:"tip"`
	Source   Source `json:"-"`
}

// Input describes the battle being summarised.
type Input struct {
	Result   battle.Result
	Monster  string
	Mistakes diagnosis.Tally
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the game.
func DefaultConfig() Config {
	return Config{MaxTokens: 200, Temperature: 0.5}
}

// Service produces notes. A nil provider always uses the fallback.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a Service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Enabled reports whether notes are LLM-drafted.
func (s *Service) Enabled() bool {
	return s.provider != nil
}

// Note returns a note for in. It never fails: LLM errors and empty
// output fall back to Fallback(in).
func (s *Service) Note(ctx context.Context, in Input) Note {
	if s.provider == nil {
		return Fallback(in)
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeCoach)
	req := llm.Prompt(systemPrompt, buildUserMessage(in), NoteSchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		slog.Debug("coach note fell back", "err", err)
		return Fallback(in)
	}
	var note Note
	if err := resp.Decode(&note); err != nil || note.Headline == "" {
		slog.Debug("coach note unusable", "err", err)
		return Fallback(in)
	}
	note.Source = SourceLLM
	return note
}

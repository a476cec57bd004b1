package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/abhisek/numcraft/internal/app"
	"github.com/abhisek/numcraft/internal/battle"
	"github.com/abhisek/numcraft/internal/campaign"
	"github.com/abhisek/numcraft/internal/coach"
	"github.com/abhisek/numcraft/internal/diagnosis"
	"github.com/abhisek/numcraft/internal/llm"
	"github.com/abhisek/numcraft/internal/problemgen"
	"github.com/abhisek/numcraft/internal/session"
	"github.com/abhisek/numcraft/internal/store"
)

// seed returns the configured seed, or a random one.
func seed() uint64 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return rand.Uint64()
}

// buildProvider returns the configured LLM provider, or nil when none is
// configured or it fails to initialise. The game plays fine without one.
func buildProvider(ctx context.Context, repo store.EventRepo) llm.Provider {
	llmCfg := cfg.LLM
	if !llmCfg.Discover() {
		slog.Info("no LLM provider configured; using rule-based diagnosis and fallback coach notes")
		return nil
	}
	provider, err := llm.NewProvider(ctx, llmCfg, repo)
	if err != nil {
		slog.Warn("LLM provider unavailable", "provider", llmCfg.Provider, "err", err)
		return nil
	}
	slog.Info("LLM provider ready", "provider", llmCfg.Provider, "model", provider.ModelID())
	return provider
}

type sessionOptions struct {
	store    *store.Store // nil plays without persistence
	provider llm.Provider
	battle   []battle.Option
}

// newSession builds the game and everything around it.
func newSession(opts sessionOptions) (*session.Session, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	game := campaign.New(cat, problemgen.NewSource(seed()), opts.battle...)

	sopts := session.Options{
		Game:      game,
		Diagnosis: diagnosis.NewService(opts.provider),
		Coach:     coach.NewService(opts.provider, coach.DefaultConfig()),
	}
	if opts.store != nil {
		sopts.Events = opts.store.EventRepo()
		sopts.Snapshots = opts.store.SnapshotRepo()
	}
	return session.New(sopts), nil
}

// runApp opens the store, resumes the saved run and launches the TUI.
func runApp(cmd *cobra.Command, fresh bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	sess, err := newSession(sessionOptions{
		store:    st,
		provider: buildProvider(ctx, st.EventRepo()),
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	resumed := false
	if fresh {
		if err := sess.NewRun(ctx); err != nil {
			return fmt.Errorf("start new run: %w", err)
		}
	} else if resumed, err = sess.Resume(ctx); err != nil {
		slog.Warn("could not resume; starting a new run", "err", err)
	}

	err = app.Run(ctx, app.Options{Session: sess, Resumed: resumed})
	if saveErr := sess.Save(context.Background()); saveErr != nil {
		slog.Warn("save on exit", "err", saveErr)
	}
	return err
}

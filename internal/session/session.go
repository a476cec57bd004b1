// Package session ties a campaign Game to the services around it: the event
// store, mistake diagnosis and coaching. The TUI screens and the headless
// simulator both drive battles through a Session.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"sync"

	"github.com/abhisek/numcraft/internal/campaign"
	"github.com/abhisek/numcraft/internal/coach"
	"github.com/abhisek/numcraft/internal/diagnosis"
	"github.com/abhisek/numcraft/internal/store"
)

// SnapshotVersion is written into every saved snapshot.
const SnapshotVersion = 1

// SnapshotsKept is how many snapshots survive each save.
const SnapshotsKept = 10

// Options configures a Session. Only Game is required.
type Options struct {
	Game      *campaign.Game
	Events    store.EventRepo
	Snapshots store.SnapshotRepo
	Diagnosis *diagnosis.Service
	Coach     *coach.Service
}

// Session is not safe for concurrent use, except that asynchronous
// diagnosis results may land in the mistake tally at any time.
type Session struct {
	game   *campaign.Game
	events store.EventRepo
	snaps  store.SnapshotRepo
	diag   *diagnosis.Service
	coach  *coach.Service

	mu       sync.Mutex
	mistakes diagnosis.Tally
	tallyGen uint64 // bumped whenever mistakes is reset
}

// New creates a Session. Missing diagnosis and coach services are replaced
// with rule-based and fallback-only ones.
func New(opts Options) *Session {
	s := &Session{
		game:     opts.Game,
		events:   opts.Events,
		snaps:    opts.Snapshots,
		diag:     opts.Diagnosis,
		coach:    opts.Coach,
		mistakes: diagnosis.Tally{},
	}
	if s.diag == nil {
		s.diag = diagnosis.NewService(nil)
	}
	if s.coach == nil {
		s.coach = coach.NewService(nil, coach.DefaultConfig())
	}
	return s
}

// Game returns the underlying campaign.
func (s *Session) Game() *campaign.Game { return s.game }

// Events returns the event repository, which may be nil.
func (s *Session) Events() store.EventRepo { return s.events }

// Close stops background diagnosis.
func (s *Session) Close() {
	s.diag.Close()
}

// Resume restores the most recent snapshot. It reports whether one was
// found.
func (s *Session) Resume(ctx context.Context) (bool, error) {
	if s.snaps == nil {
		return false, nil
	}
	snap, err := s.snaps.Latest(ctx)
	if err != nil {
		return false, fmt.Errorf("resume: %w", err)
	}
	if snap == nil {
		return false, nil
	}
	s.game.Restore(snap.Data.Game)
	slog.Info("resumed run", "run_id", snap.Data.Game.Run.ID, "stage", snap.Data.Game.Run.Stage)
	return true, nil
}

// Save writes a snapshot of the game and prunes old ones.
func (s *Session) Save(ctx context.Context) error {
	if s.snaps == nil {
		return nil
	}
	snap := &store.Snapshot{
		Data: store.SnapshotData{Version: SnapshotVersion, Game: s.game.Snapshot()},
	}
	if err := s.snaps.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := s.snaps.Prune(ctx, SnapshotsKept); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// NewRun starts the campaign over and saves the empty run.
func (s *Session) NewRun(ctx context.Context) error {
	s.game.NewRun()
	s.resetMistakes()
	return s.Save(ctx)
}

// StartBattle begins the battle at the current stage.
func (s *Session) StartBattle() error {
	s.resetMistakes()
	return s.game.StartBattle()
}

// Retry restarts the current stage with the retry penalty applied.
func (s *Session) Retry() error {
	s.resetMistakes()
	return s.game.Retry()
}

// Quit abandons the battle in progress without recording anything.
func (s *Session) Quit() bool {
	return s.game.Engine().Quit()
}

// Mistakes returns a copy of the current battle's mistake tally.
func (s *Session) Mistakes() diagnosis.Tally {
	s.mu.Lock()
	defer s.mu.Unlock()
	return maps.Clone(s.mistakes)
}

func (s *Session) resetMistakes() {
	s.mu.Lock()
	s.mistakes = diagnosis.Tally{}
	s.tallyGen++
	s.mu.Unlock()
}

// Note asks the coach about a finished battle.
func (s *Session) Note(ctx context.Context, report campaign.Report) coach.Note {
	return s.coach.Note(ctx, coach.Input{
		Result:   report.Result,
		Monster:  s.game.Catalog().Monster(report.Result.Stage).Name,
		Mistakes: s.Mistakes(),
	})
}

package session

import (
	"context"
	"log/slog"

	"github.com/abhisek/numcraft/internal/battle"
	"github.com/abhisek/numcraft/internal/campaign"
	"github.com/abhisek/numcraft/internal/diagnosis"
	"github.com/abhisek/numcraft/internal/store"
)

// RecordTurn diagnoses a missed turn and appends the answer event. It
// returns the rule-based category, empty for correct answers. When the
// rules are inconclusive and an LLM is configured, refined is called later
// from another goroutine with the LLM's verdict.
func (s *Session) RecordTurn(ctx context.Context, res battle.Resolution, refined func(*diagnosis.DiagnosisResult)) diagnosis.ErrorCategory {
	var category diagnosis.ErrorCategory
	if !res.Correct() {
		accuracy := float64(s.game.Tracker().Accuracy()) / 100
		s.mu.Lock()
		gen := s.tallyGen
		s.mu.Unlock()
		cb := func(r *diagnosis.DiagnosisResult) {
			s.reclassify(gen, r.Category)
			if refined != nil {
				refined(r)
			}
		}
		result := s.diag.Diagnose(ctx, diagnosis.InputFromResolution(res, accuracy), cb)
		category = result.Category

		s.mu.Lock()
		s.mistakes.Add(category)
		s.mu.Unlock()
	}

	if s.events == nil {
		return category
	}
	err := s.events.AppendAnswer(ctx, store.AnswerEventData{
		BattleID:  s.game.BattleID(),
		Stage:     s.game.Engine().Stage(),
		Turn:      int(res.Turn),
		Level:     int(res.Asked),
		A:         res.Problem.A,
		B:         res.Problem.B,
		Answer:    res.Problem.Answer,
		Given:     res.Given,
		Kind:      res.Kind.String(),
		Correct:   res.Correct(),
		ElapsedMs: res.Elapsed.Milliseconds(),
		Combo:     res.Combo,
		Category:  string(category),
	})
	if err != nil {
		slog.Warn("record answer", "battle_id", s.game.BattleID(), "err", err)
	}
	return category
}

// reclassify moves one unclassified miss to c. Verdicts for a tally that
// has since been reset belong to an earlier battle and are dropped.
func (s *Session) reclassify(gen uint64, c diagnosis.ErrorCategory) {
	if c == diagnosis.CategoryUnclassified {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.tallyGen {
		return
	}
	if s.mistakes[diagnosis.CategoryUnclassified] > 0 {
		s.mistakes[diagnosis.CategoryUnclassified]--
		if s.mistakes[diagnosis.CategoryUnclassified] == 0 {
			delete(s.mistakes, diagnosis.CategoryUnclassified)
		}
	}
	s.mistakes.Add(c)
}

// Conclude finishes a decided battle: the engine fires its observer, the
// battle event is appended and the run is saved. It reports false when
// there was nothing to conclude.
func (s *Session) Conclude(ctx context.Context) (campaign.Report, bool) {
	if _, ok := s.game.Engine().Conclude(); !ok {
		return campaign.Report{}, false
	}
	report, ok := s.game.LastReport()
	if !ok {
		return campaign.Report{}, false
	}

	res := report.Result
	slog.Info("battle concluded",
		"battle_id", report.BattleID,
		"stage", res.Stage,
		"victory", res.Victory,
		"score", res.Score,
		"level", int(res.Level),
	)

	if s.events != nil {
		err := s.events.AppendBattle(ctx, store.BattleEventData{
			BattleID:     report.BattleID,
			RunID:        report.Run.ID,
			Stage:        res.Stage,
			Monster:      s.game.Catalog().Monster(res.Stage).Name,
			Victory:      res.Victory,
			Score:        res.Score,
			Banked:       report.Banked,
			Accuracy:     res.Accuracy,
			MaxCombo:     res.MaxCombo,
			Level:        int(res.Level),
			LevelChanged: res.LevelChanged,
			Loot:         report.Loot.String(),
		})
		if err != nil {
			slog.Warn("record battle", "battle_id", report.BattleID, "err", err)
		}
	}
	if err := s.Save(ctx); err != nil {
		slog.Warn("save run", "err", err)
	}
	return report, true
}

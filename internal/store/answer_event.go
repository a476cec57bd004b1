package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var answerColumns = []string{
	"battle_id", "stage", "turn", "level", "operand_a", "operand_b", "answer",
	"given", "kind", "correct", "elapsed_ms", "combo", "category",
}

func (r *eventRepo) AppendAnswer(ctx context.Context, d AnswerEventData) error {
	err := r.insert(ctx, "answer_events", answerColumns, []any{
		d.BattleID, d.Stage, d.Turn, d.Level, d.A, d.B, d.Answer,
		d.Given, d.Kind, d.Correct, d.ElapsedMs, d.Combo, d.Category,
	})
	if err != nil {
		return fmt.Errorf("append answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) Answers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error) {
	sel := builder().Select(append([]string{"sequence", "timestamp"}, answerColumns...)...).
		From(entsql.Table("answer_events")).
		OrderBy("sequence")
	query, args := opts.where(sel).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query answers: %w", err)
	}
	defer rows.Close()

	var out []AnswerEvent
	for rows.Next() {
		var (
			e  AnswerEvent
			ts int64
		)
		if err := rows.Scan(
			&e.Sequence, &ts, &e.BattleID, &e.Stage, &e.Turn, &e.Level,
			&e.A, &e.B, &e.Answer, &e.Given, &e.Kind, &e.Correct,
			&e.ElapsedMs, &e.Combo, &e.Category,
		); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) LevelAccuracy(ctx context.Context) ([]LevelStat, error) {
	query, args := builder().Select("level", entsql.Count("*"), "COALESCE(SUM(correct), 0)").
		From(entsql.Table("answer_events")).
		GroupBy("level").
		OrderBy("level").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query level accuracy: %w", err)
	}
	defer rows.Close()

	var out []LevelStat
	for rows.Next() {
		var s LevelStat
		if err := rows.Scan(&s.Level, &s.Attempts, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan level accuracy: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) MistakeCounts(ctx context.Context, opts QueryOpts) (map[string]int, error) {
	sel := builder().Select("category", entsql.Count("*")).
		From(entsql.Table("answer_events")).
		Where(entsql.And(
			entsql.EQ("correct", false),
			entsql.NEQ("category", ""),
		)).
		GroupBy("category")
	opts.Limit = 0
	query, args := opts.where(sel).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query mistake counts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			cat string
			n   int
		)
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("scan mistake count: %w", err)
		}
		out[cat] = n
	}
	return out, rows.Err()
}

package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with the ent SQL builder and the global
// sequence counter.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
	now func() time.Time
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// insert assigns the next sequence and timestamp and appends one row.
func (r *eventRepo) insert(ctx context.Context, table string, columns []string, values []any) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	columns = append([]string{"sequence", "timestamp"}, columns...)
	values = append([]any{seq, toMillis(r.now())}, values...)

	query, args := builder().Insert(table).Columns(columns...).Values(values...).Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// where applies the common QueryOpts filters to sel.
func (o QueryOpts) where(sel *entsql.Selector) *entsql.Selector {
	if o.After > 0 {
		sel.Where(entsql.GT("sequence", o.After))
	}
	if o.BattleID != "" {
		sel.Where(entsql.EQ("battle_id", o.BattleID))
	}
	if o.Limit > 0 {
		sel.Limit(o.Limit)
	}
	return sel
}

var battleColumns = []string{
	"battle_id", "run_id", "stage", "monster", "victory", "score", "banked",
	"accuracy", "max_combo", "level", "level_changed", "loot",
}

func (r *eventRepo) AppendBattle(ctx context.Context, d BattleEventData) error {
	err := r.insert(ctx, "battle_events", battleColumns, []any{
		d.BattleID, d.RunID, d.Stage, d.Monster, d.Victory, d.Score, d.Banked,
		d.Accuracy, d.MaxCombo, d.Level, d.LevelChanged, d.Loot,
	})
	if err != nil {
		return fmt.Errorf("append battle event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentBattles(ctx context.Context, opts QueryOpts) ([]BattleEvent, error) {
	sel := builder().Select(append([]string{"sequence", "timestamp"}, battleColumns...)...).
		From(entsql.Table("battle_events")).
		OrderBy(entsql.Desc("sequence"))
	query, args := opts.where(sel).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query battles: %w", err)
	}
	defer rows.Close()

	var out []BattleEvent
	for rows.Next() {
		var (
			e  BattleEvent
			ts int64
		)
		if err := rows.Scan(
			&e.Sequence, &ts, &e.BattleID, &e.RunID, &e.Stage, &e.Monster,
			&e.Victory, &e.Score, &e.Banked, &e.Accuracy, &e.MaxCombo,
			&e.Level, &e.LevelChanged, &e.Loot,
		); err != nil {
			return nil, fmt.Errorf("scan battle: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) BattleSummary(ctx context.Context) (BattleSummary, error) {
	query, args := builder().Select(
		entsql.Count("*"),
		"COALESCE(SUM(victory), 0)",
		"COALESCE(MAX(CASE WHEN victory = 1 THEN stage END), -1)",
		"COALESCE(SUM(banked), 0)",
	).From(entsql.Table("battle_events")).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return BattleSummary{}, fmt.Errorf("query battle summary: %w", err)
	}
	defer rows.Close()

	var s BattleSummary
	if rows.Next() {
		if err := rows.Scan(&s.Battles, &s.Victories, &s.BestStage, &s.TotalScore); err != nil {
			return BattleSummary{}, fmt.Errorf("scan battle summary: %w", err)
		}
	}
	return s, rows.Err()
}

package store

import (
	"context"
	"time"

	"github.com/abhisek/numcraft/internal/campaign"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int    // max results (0 = unlimited)
	After    int64  // sequence > After
	BattleID string // restrict to one battle
}

// EventMeta is assigned by the store when an event is appended.
type EventMeta struct {
	Sequence  int64
	Timestamp time.Time
}

// BattleEventData records the end of one battle.
type BattleEventData struct {
	BattleID     string
	RunID        string
	Stage        int
	Monster      string
	Victory      bool
	Score        int
	Banked       int
	Accuracy     int
	MaxCombo     int
	Level        int
	LevelChanged bool
	Loot         string
}

// BattleEvent is a stored BattleEventData.
type BattleEvent struct {
	EventMeta
	BattleEventData
}

// AnswerEventData records one resolved turn.
type AnswerEventData struct {
	BattleID  string
	Stage     int
	Turn      int
	Level     int
	A         int
	B         int
	Answer    int
	Given     string
	Kind      string // correct, incorrect or timeout
	Correct   bool
	ElapsedMs int64
	Combo     int
	Category  string // diagnosis category for misses, empty otherwise
}

// AnswerEvent is a stored AnswerEventData.
type AnswerEvent struct {
	EventMeta
	AnswerEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	EventMeta
	LLMRequestEventData
}

// LevelStat aggregates answers at one difficulty level.
type LevelStat struct {
	Level    int
	Attempts int
	Correct  int
}

// Accuracy returns the share of correct answers in [0, 1].
func (s LevelStat) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// BattleSummary aggregates every recorded battle.
type BattleSummary struct {
	Battles    int
	Victories  int
	BestStage  int // highest stage won, -1 when none
	TotalScore int // sum of banked scores
}

// LLMUsage aggregates LLM calls per model and purpose.
type LLMUsage struct {
	Model        string
	Purpose      string
	Calls        int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendBattle(ctx context.Context, data BattleEventData) error
	AppendAnswer(ctx context.Context, data AnswerEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentBattles returns battles newest first.
	RecentBattles(ctx context.Context, opts QueryOpts) ([]BattleEvent, error)
	// Answers returns answers in sequence order.
	Answers(ctx context.Context, opts QueryOpts) ([]AnswerEvent, error)
	BattleSummary(ctx context.Context) (BattleSummary, error)
	LevelAccuracy(ctx context.Context) ([]LevelStat, error)
	// MistakeCounts counts diagnosed misses by category.
	MistakeCounts(ctx context.Context, opts QueryOpts) (map[string]int, error)
	// RecentLLMRequests returns LLM calls newest first.
	RecentLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	LLMUsage(ctx context.Context) ([]LLMUsage, error)
}

// SnapshotData captures the full campaign state at a point in time.
type SnapshotData struct {
	Version int               `json:"version"`
	Game    campaign.Snapshot `json:"game"`
}

// Snapshot represents a point-in-time capture of campaign state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages campaign state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot. Zero Sequence and Timestamp are filled in.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

package diagnosis

import (
	"time"

	"github.com/abhisek/numcraft/internal/battle"
	"github.com/abhisek/numcraft/internal/problemgen"
)

// ErrorCategory classifies a missed turn.
type ErrorCategory string

const (
	CategoryTimeout       ErrorCategory = "timeout"
	CategoryForgotBorrow  ErrorCategory = "forgot-borrow"
	CategoryAddedInstead  ErrorCategory = "added-instead"
	CategoryOffByOne      ErrorCategory = "off-by-one"
	CategorySpeedRush     ErrorCategory = "speed-rush"
	CategoryCareless      ErrorCategory = "careless"
	CategoryMisconception ErrorCategory = "misconception"
	CategoryUnclassified  ErrorCategory = "unclassified"
)

// AllCategories returns every category in display order.
func AllCategories() []ErrorCategory {
	return []ErrorCategory{
		CategoryTimeout,
		CategoryForgotBorrow,
		CategoryAddedInstead,
		CategoryOffByOne,
		CategorySpeedRush,
		CategoryCareless,
		CategoryMisconception,
		CategoryUnclassified,
	}
}

// DisplayName returns a human-readable label for the category.
func (c ErrorCategory) DisplayName() string {
	switch c {
	case CategoryTimeout:
		return "Ran out of time"
	case CategoryForgotBorrow:
		return "Forgot to borrow"
	case CategoryAddedInstead:
		return "Added instead"
	case CategoryOffByOne:
		return "Off by one"
	case CategorySpeedRush:
		return "Rushed"
	case CategoryCareless:
		return "Careless slip"
	case CategoryMisconception:
		return "Misconception"
	case CategoryUnclassified:
		return "Unclassified"
	default:
		return string(c)
	}
}

// ClassifyInput holds the context for classification.
type ClassifyInput struct {
	Problem  problemgen.Problem
	Given    string // empty on timeout
	Elapsed  time.Duration
	TimedOut bool
	Accuracy float64 // overall accuracy before this turn (0.0–1.0)
}

// InputFromResolution builds the classifier input for a missed turn.
func InputFromResolution(res battle.Resolution, accuracy float64) *ClassifyInput {
	return &ClassifyInput{
		Problem:  res.Problem,
		Given:    res.Given,
		Elapsed:  res.Elapsed,
		TimedOut: res.Kind == battle.KindTimeout,
		Accuracy: accuracy,
	}
}

// givenValue returns the parsed answer, or -1 when there is none.
func (in *ClassifyInput) givenValue() int {
	if in.TimedOut {
		return -1
	}
	return problemgen.ParseAnswer(in.Given)
}

// DiagnosisResult is the output of classifying a missed turn.
type DiagnosisResult struct {
	Category        ErrorCategory
	MisconceptionID string // non-empty only when Category == misconception
	Confidence      float64
	ClassifierName  string
	Reasoning       string // LLM reasoning, empty for rule-based
}

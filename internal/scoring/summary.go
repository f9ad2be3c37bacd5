package scoring

import "github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"

// Summary holds statistics derived from a sorted ranking.
type Summary struct {
	Count        int          `json:"count"`
	AverageScore float64      `json:"average_score"`
	Top          *RankedEntry `json:"top,omitempty"`
}

// Summarize is safe on an empty ranking: count and average are 0 and Top is nil.
func Summarize(entries []RankedEntry) Summary {
	s := Summary{Count: len(entries)}
	if len(entries) == 0 {
		return s
	}
	var sum float64
	for _, e := range entries {
		sum += e.Score
	}
	s.AverageScore = sum / float64(len(entries))
	top := entries[0]
	s.Top = &top
	return s
}

// EvaluationStatus tells whether any decision maker has scored an alternative.
type EvaluationStatus string

const (
	StatusScored  EvaluationStatus = "scored"
	StatusPending EvaluationStatus = "pending"
)

// ScoredSet returns the ids of alternatives that appear in at least one score.
func ScoredSet(scores []store.Score) map[int64]struct{} {
	set := make(map[int64]struct{}, len(scores))
	for _, s := range scores {
		set[s.AlternativeID] = struct{}{}
	}
	return set
}

// StatusOf derives the status of one alternative from a scored set.
func StatusOf(alternativeID int64, scored map[int64]struct{}) EvaluationStatus {
	if _, ok := scored[alternativeID]; ok {
		return StatusScored
	}
	return StatusPending
}

// DeriveStatus computes every alternative's status from the current scores.
// It is recomputed on each call and never stored.
func DeriveStatus(alternatives []store.Alternative, scores []store.Score) map[int64]EvaluationStatus {
	scored := ScoredSet(scores)
	out := make(map[int64]EvaluationStatus, len(alternatives))
	for _, a := range alternatives {
		out[a.ID] = StatusOf(a.ID, scored)
	}
	return out
}

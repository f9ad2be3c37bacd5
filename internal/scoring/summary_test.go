package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

func TestSummarize_Empty(t *testing.T) {
	var s Summary
	assert.NotPanics(t, func() { s = Summarize(nil) })
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.AverageScore)
	assert.Nil(t, s.Top)
}

func TestSummarize(t *testing.T) {
	entries := []RankedEntry{
		{Rank: 1, Name: "B", Score: 0.9, AlternativeID: 2},
		{Rank: 2, Name: "A", Score: 0.6, AlternativeID: 1},
	}
	s := Summarize(entries)
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 0.75, s.AverageScore, 1e-12)
	require.NotNil(t, s.Top)
	assert.Equal(t, "B", s.Top.Name)

	// Top is a copy.
	s.Top.Name = "changed"
	assert.Equal(t, "B", entries[0].Name)
}

func TestDeriveStatus(t *testing.T) {
	alternatives := []store.Alternative{{ID: 1}, {ID: 2}, {ID: 3}}
	scores := []store.Score{
		{AlternativeID: 1, CriterionID: 1, Value: 7},
		{AlternativeID: 1, CriterionID: 2, Value: 4},
		{AlternativeID: 3, CriterionID: 1, Value: 9},
		{AlternativeID: 42, CriterionID: 1, Value: 1},
	}
	got := DeriveStatus(alternatives, scores)
	assert.Equal(t, map[int64]EvaluationStatus{
		1: StatusScored,
		2: StatusPending,
		3: StatusScored,
	}, got)

	// Status follows the score set on every call.
	got = DeriveStatus(alternatives, nil)
	assert.Equal(t, StatusPending, got[1])
}

func TestClassify(t *testing.T) {
	var entries []RankedEntry
	for i := 1; i <= 8; i++ {
		entries = append(entries, RankedEntry{Rank: i, AlternativeID: int64(i)})
	}

	got := Classify(entries, DefaultClassPolicy())
	require.Len(t, got, 8)
	want := []Class{
		ClassAccepted, ClassAccepted, ClassAccepted,
		ClassInterview, ClassInterview, ClassInterview,
		ClassRejected, ClassRejected,
	}
	for i, c := range want {
		assert.Equal(t, c, got[i].Class, "position %d", i)
	}
	assert.Equal(t, map[Class]int{ClassAccepted: 3, ClassInterview: 3, ClassRejected: 2}, CountByClass(got))
}

func TestClassify_CustomAndNegativePolicy(t *testing.T) {
	entries := []RankedEntry{{Rank: 1}, {Rank: 2}, {Rank: 3}}

	got := Classify(entries, ClassPolicy{Accepted: 1, Interview: 0})
	assert.Equal(t, ClassAccepted, got[0].Class)
	assert.Equal(t, ClassRejected, got[1].Class)

	got = Classify(entries, ClassPolicy{Accepted: -2, Interview: 2})
	assert.Equal(t, ClassInterview, got[0].Class)
	assert.Equal(t, ClassInterview, got[1].Class)
	assert.Equal(t, ClassRejected, got[2].Class)

	assert.Empty(t, Classify(nil, DefaultClassPolicy()))
}

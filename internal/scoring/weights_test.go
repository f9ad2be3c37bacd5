package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

func int64Ptr(v int64) *int64 { return &v }

func TestComputeTotal(t *testing.T) {
	if got := ComputeTotal(Weights{}); got != 0 {
		t.Errorf("empty total: got %f, want 0", got)
	}
	got := ComputeTotal(Weights{1: 0.25, 2: 0.25, 3: 0.5})
	if math.Abs(got-1.0) > 1e-12 {
		t.Errorf("got %f, want 1.0", got)
	}
}

func TestDistributeEqually_SumsToOne(t *testing.T) {
	for n := 1; n <= 50; n++ {
		ids := make([]int64, n)
		for i := range ids {
			ids[i] = int64(i + 1)
		}
		w := DistributeEqually(ids)
		if len(w) != n {
			t.Fatalf("n=%d: got %d entries", n, len(w))
		}
		if total := ComputeTotal(w); math.Abs(total-1.0) > 1e-4 {
			t.Errorf("n=%d: total %f not within 1e-4 of 1.0", n, total)
		}
		for id, v := range w {
			if v < 0 || v > 1 {
				t.Errorf("n=%d: criterion %d weight %f out of [0,1]", n, id, v)
			}
			if math.Abs(v-1.0/float64(n)) > 1e-4 {
				t.Errorf("n=%d: criterion %d weight %f too far from 1/n", n, id, v)
			}
		}
	}
}

func TestDistributeEqually_SingleCriterionIsExactlyOne(t *testing.T) {
	w := DistributeEqually([]int64{42})
	if w[42] != 1.0 {
		t.Errorf("expected exactly 1.0, got %v", w[42])
	}
}

func TestDistributeEqually_Empty(t *testing.T) {
	w := DistributeEqually(nil)
	if w == nil || len(w) != 0 {
		t.Errorf("expected empty non-nil map, got %v", w)
	}
}

func TestDistributeEqually_ThreeCriteria(t *testing.T) {
	w := DistributeEqually([]int64{3, 1, 2})
	// The leftover step goes to the lowest id.
	if w[1] != 0.3334 || w[2] != 0.3333 || w[3] != 0.3333 {
		t.Errorf("unexpected distribution: %v", w)
	}
}

func TestDistributeEqually_DuplicateIDs(t *testing.T) {
	w := DistributeEqually([]int64{5, 5, 6})
	if len(w) != 2 || w[5] != 0.5 || w[6] != 0.5 {
		t.Errorf("unexpected distribution: %v", w)
	}
}

func TestNormalizeProportionally(t *testing.T) {
	tests := []struct {
		name string
		in   Weights
		want Weights
	}{
		{"already normal", Weights{1: 0.5, 2: 0.5}, Weights{1: 0.5, 2: 0.5}},
		{"scale up", Weights{1: 0.2, 2: 0.2}, Weights{1: 0.5, 2: 0.5}},
		{"scale down", Weights{1: 0.8, 2: 0.4}, Weights{1: 0.6667, 2: 0.3333}},
		{"zero entry stays zero", Weights{1: 0.3, 2: 0}, Weights{1: 1.0, 2: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeProportionally(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for id, want := range tt.want {
				if math.Abs(got[id]-want) > 1e-9 {
					t.Errorf("criterion %d: got %v, want %v", id, got[id], want)
				}
			}
		})
	}
}

func TestNormalizeProportionally_SumsToOne(t *testing.T) {
	inputs := []Weights{
		{1: 0.1, 2: 0.1, 3: 0.1},
		{1: 1, 2: 1, 3: 1, 4: 1, 5: 1, 6: 1, 7: 1},
		{1: 0.33, 2: 0.17, 3: 0.91, 4: 0.05},
		{1: 0.0001},
		{1: 0.9, 2: 0.9, 3: 0.9, 4: 0.9, 5: 0.9, 6: 0.9, 7: 0.9, 8: 0.9, 9: 0.9, 10: 0.9, 11: 0.9},
	}
	for _, in := range inputs {
		out := NormalizeProportionally(in)
		if total := ComputeTotal(out); math.Abs(total-1.0) > 1e-4 {
			t.Errorf("%v: total %f not within 1e-4 of 1.0", in, total)
		}
		for id, v := range out {
			if v < 0 || v > 1 {
				t.Errorf("%v: criterion %d weight %f out of [0,1]", in, id, v)
			}
		}
	}
}

func TestNormalizeProportionally_Idempotent(t *testing.T) {
	inputs := []Weights{
		{1: 0.8, 2: 0.4},
		{1: 0.33, 2: 0.17, 3: 0.91, 4: 0.05},
		{1: 1, 2: 1, 3: 1},
	}
	for _, in := range inputs {
		once := NormalizeProportionally(in)
		twice := NormalizeProportionally(once)
		for id := range once {
			if math.Abs(once[id]-twice[id]) > 1e-4 {
				t.Errorf("%v: criterion %d drifted %v -> %v", in, id, once[id], twice[id])
			}
		}
	}
}

func TestNormalizeProportionally_ZeroTotalUnchanged(t *testing.T) {
	empty := Weights{}
	if got := NormalizeProportionally(empty); len(got) != 0 {
		t.Errorf("expected empty, got %v", got)
	}
	zero := Weights{7: 0}
	got := NormalizeProportionally(zero)
	if len(got) != 1 || got[7] != 0 {
		t.Errorf("expected {7:0}, got %v", got)
	}
}

func TestRound_HalfUp(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0.12346, 0.1235},
		{0.12344, 0.1234},
		{0.99996, 1.0},
		{0.00005, 0.0001},
		{1.0, 1.0},
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestWeightNormalizer_Validate(t *testing.T) {
	n := NewWeightNormalizer(0)
	if n.Tolerance() != DefaultTolerance {
		t.Fatalf("expected default tolerance, got %v", n.Tolerance())
	}

	t.Run("valid", func(t *testing.T) {
		if err := n.Validate(Weights{1: 0.6, 2: 0.4}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("within tolerance", func(t *testing.T) {
		if err := n.Validate(Weights{1: 0.33, 2: 0.33, 3: 0.33}); err != nil {
			t.Errorf("0.99 should pass: %v", err)
		}
	})

	t.Run("total too low", func(t *testing.T) {
		err := n.Validate(Weights{1: 0.5, 2: 0.3})
		var totalErr *WeightTotalError
		if !errors.As(err, &totalErr) {
			t.Fatalf("expected WeightTotalError, got %v", err)
		}
		if math.Abs(totalErr.Total-0.8) > 1e-9 || totalErr.Required != 1.0 {
			t.Errorf("unexpected error fields: %+v", totalErr)
		}
		if got := err.Error(); got != "weights sum to 0.8000, must sum to 1.0 (±0.01)" {
			t.Errorf("unexpected message: %s", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if err := n.Validate(Weights{}); !errors.Is(err, ErrEmptyAssignment) {
			t.Errorf("expected ErrEmptyAssignment, got %v", err)
		}
	})

	t.Run("negative", func(t *testing.T) {
		if err := n.Validate(Weights{1: 1.2, 2: -0.2}); !errors.Is(err, ErrWeightOutOfRange) {
			t.Errorf("expected ErrWeightOutOfRange, got %v", err)
		}
	})
}

func TestTopLevelAndUnknownCriteria(t *testing.T) {
	criteria := []store.Criterion{
		{ID: 1, Name: "Experience"},
		{ID: 2, Name: "Education"},
		{ID: 3, Name: "Degree", ParentID: int64Ptr(2)},
	}
	ids := TopLevelIDs(criteria)
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Fatalf("unexpected top-level ids: %v", ids)
	}

	unknown := UnknownCriteria(Weights{1: 0.5, 3: 0.25, 9: 0.25}, criteria)
	if len(unknown) != 2 || unknown[0] != 3 || unknown[1] != 9 {
		t.Errorf("unexpected unknown ids: %v", unknown)
	}
}

func TestMissingCriteria(t *testing.T) {
	criteria := []store.Criterion{
		{ID: 4, Name: "Salary"},
		{ID: 1, Name: "Experience"},
		{ID: 2, Name: "Education"},
		{ID: 3, Name: "Degree", ParentID: int64Ptr(2)},
	}
	missing := MissingCriteria(Weights{1: 1.0}, criteria)
	if len(missing) != 2 || missing[0] != 2 || missing[1] != 4 {
		t.Errorf("unexpected missing ids: %v", missing)
	}
	if got := MissingCriteria(Weights{1: 0.5, 2: 0.25, 4: 0.25}, criteria); len(got) != 0 {
		t.Errorf("expected no missing ids, got %v", got)
	}
}

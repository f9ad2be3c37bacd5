package scoring

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Ghozi-Waridi/project-UAS-Sistem-Informasi-sub000/internal/store"
)

const (
	// RequiredTotal is the sum a weight assignment must reach.
	RequiredTotal = 1.0
	// DefaultTolerance is the accepted distance between a total and RequiredTotal.
	DefaultTolerance = 0.01

	// weightUnits is the number of 4-decimal steps in RequiredTotal.
	weightUnits = 10000
	unitEpsilon = 1e-9
)

var (
	ErrEmptyAssignment  = errors.New("weight assignment has no criteria")
	ErrWeightOutOfRange = errors.New("weight out of range")
)

// Weights maps criterion id to weight.
type Weights map[int64]float64

// WeightTotalError reports a weight assignment whose total misses RequiredTotal.
type WeightTotalError struct {
	Total     float64
	Required  float64
	Tolerance float64
}

func (e *WeightTotalError) Error() string {
	return fmt.Sprintf("weights sum to %.4f, must sum to %.1f (±%g)", e.Total, e.Required, e.Tolerance)
}

// Round rounds v half-up to 4 decimal places.
func Round(v float64) float64 {
	return math.Floor(v*weightUnits+0.5) / weightUnits
}

// ComputeTotal returns the sum of all weights.
func ComputeTotal(w Weights) float64 {
	var total float64
	for _, v := range w {
		total += v
	}
	return total
}

// DistributeEqually gives each criterion 1/N of the total, expressed in
// 4-decimal steps. Steps left over by the division go to the lowest ids so
// the result always sums to exactly 1.0; a single criterion gets 1.0. This
// differs from rounding each share half-up: N=3 yields 0.3334, 0.3333, 0.3333
// rather than three times 0.3333.
func DistributeEqually(ids []int64) Weights {
	unique := dedupe(ids)
	out := make(Weights, len(unique))
	if len(unique) == 0 {
		return out
	}
	base := weightUnits / len(unique)
	rem := weightUnits % len(unique)
	for i, id := range unique {
		units := base
		if i < rem {
			units++
		}
		out[id] = float64(units) / weightUnits
	}
	return out
}

// NormalizeProportionally scales every weight by 1/total, rounded to 4
// decimals with largest-remainder apportionment so the output sums to 1.0.
// A zero total leaves the input untouched.
func NormalizeProportionally(w Weights) Weights {
	total := ComputeTotal(w)
	if total <= 0 || len(w) == 0 {
		return w
	}

	type share struct {
		id    int64
		units int
		frac  float64
	}
	shares := make([]share, 0, len(w))
	assigned := 0
	for id, v := range w {
		scaled := v / total * weightUnits
		units := math.Floor(scaled + unitEpsilon)
		frac := scaled - units
		if frac < 0 {
			frac = 0
		}
		shares = append(shares, share{id: id, units: int(units), frac: frac})
		assigned += int(units)
	}

	sort.Slice(shares, func(i, j int) bool {
		if shares[i].frac != shares[j].frac {
			return shares[i].frac > shares[j].frac
		}
		return shares[i].id < shares[j].id
	})
	for i := 0; assigned < weightUnits && i < len(shares); i++ {
		if shares[i].frac <= 0 {
			break
		}
		shares[i].units++
		assigned++
	}

	out := make(Weights, len(shares))
	for _, s := range shares {
		out[s.id] = float64(s.units) / weightUnits
	}
	return out
}

// WithinTolerance reports whether total is acceptably close to RequiredTotal.
func WithinTolerance(total, tolerance float64) bool {
	return math.Abs(total-RequiredTotal) <= tolerance+unitEpsilon
}

// WeightNormalizer validates decision maker weight assignments before they are
// submitted to the backend.
type WeightNormalizer struct {
	tolerance float64
}

// NewWeightNormalizer creates a normalizer. A non-positive tolerance falls back
// to DefaultTolerance.
func NewWeightNormalizer(tolerance float64) *WeightNormalizer {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &WeightNormalizer{tolerance: tolerance}
}

func (n *WeightNormalizer) Tolerance() float64 { return n.tolerance }

// Validate checks that the assignment is non-empty, every weight lies in
// [0,1], and the total is within tolerance of 1.0. A bad total is reported
// as *WeightTotalError.
func (n *WeightNormalizer) Validate(w Weights) error {
	if len(w) == 0 {
		return ErrEmptyAssignment
	}
	for id, v := range w {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: criterion %d has weight %g", ErrWeightOutOfRange, id, v)
		}
	}
	total := ComputeTotal(w)
	if !WithinTolerance(total, n.tolerance) {
		return &WeightTotalError{Total: total, Required: RequiredTotal, Tolerance: n.tolerance}
	}
	return nil
}

// TopLevelIDs returns the ids of criteria without a parent, in input order.
func TopLevelIDs(criteria []store.Criterion) []int64 {
	var ids []int64
	for _, c := range criteria {
		if c.IsTopLevel() {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// UnknownCriteria returns the ids in w that are not top-level criteria of the
// project, sorted ascending.
func UnknownCriteria(w Weights, criteria []store.Criterion) []int64 {
	known := make(map[int64]bool, len(criteria))
	for _, id := range TopLevelIDs(criteria) {
		known[id] = true
	}
	var unknown []int64
	for id := range w {
		if !known[id] {
			unknown = append(unknown, id)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return unknown
}

// MissingCriteria returns the top-level criteria of the project that w gives
// no weight, sorted ascending.
func MissingCriteria(w Weights, criteria []store.Criterion) []int64 {
	var missing []int64
	for _, id := range TopLevelIDs(criteria) {
		if _, ok := w[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

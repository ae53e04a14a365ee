package matching

import (
	"errors"
	"fmt"
	"math"

	"smartmatch/internal/domain/candidate"
)

// ErrInvalidWeightVector signals a weight vector that does not sum to 1.0
// within tolerance. It is a programming-contract violation, never expected
// from ComputeWeights, and is never swallowed by the selector fallback.
var ErrInvalidWeightVector = errors.New("invalid weight vector")

const weightSumTolerance = 1e-6

// WeightVector maps every scoring category to its weight in [0,1].
// Weights sum to 1.0. Derived fresh per candidate, never persisted,
// and never mutated after construction.
type WeightVector map[Category]float64

// Sum iterates in the fixed Categories order: map-range order is
// randomized and floating-point addition is not associative, so summing
// in map order would make identical inputs produce bit-different weights.
func (w WeightVector) Sum() float64 {
	s := 0.0
	for _, cat := range Categories {
		s += w[cat]
	}
	return s
}

func (w WeightVector) Validate() error {
	if len(w) != len(Categories) {
		return fmt.Errorf("%w: expected %d categories, got %d", ErrInvalidWeightVector, len(Categories), len(w))
	}
	if s := w.Sum(); math.Abs(s-1.0) > weightSumTolerance {
		return fmt.Errorf("%w: weights sum to %.8f", ErrInvalidWeightVector, s)
	}
	return nil
}

// ComputeWeights derives the per-candidate weight vector from the declared
// priorities. Without priorities the calibration base vector is returned
// as-is (renormalized). Each lever shifts its target category by
// (v-5)/5 * MaxLeverAdjustment, every weight is floored at WeightFloor,
// and the vector is renormalized to sum to exactly 1.0. Deterministic.
func ComputeWeights(c candidate.Candidate, cal Calibration) WeightVector {
	w := make(WeightVector, len(Categories))
	for _, cat := range Categories {
		w[cat] = cal.BaseWeights[cat]
	}

	if p := c.Priorities; p != nil {
		w[CategorySalary] += leverDelta(p.Remuneration, cal.MaxLeverAdjustment)
		w[CategoryExperience] += leverDelta(p.Evolution, cal.MaxLeverAdjustment)
		w[CategoryLocation] += leverDelta(p.Proximity, cal.MaxLeverAdjustment)
		w[CategoryFlexibility] += leverDelta(p.Flexibility, cal.MaxLeverAdjustment)
	}

	normalizeWithFloor(w, cal.WeightFloor)
	return w
}

func leverDelta(v int, maxAdjust float64) float64 {
	if v < 0 {
		v = 0
	}
	if v > 10 {
		v = 10
	}
	return float64(v-5) / 5.0 * maxAdjust
}

// normalizeWithFloor clips every weight to the floor and rescales until the
// vector sums to 1.0 with every weight still at or above the floor. The
// floor keeps every category discriminating for tie-breaks; no category is
// ever fully zeroed. The residual rounding error lands on the largest
// weight so the sum is exact.
func normalizeWithFloor(w WeightVector, floor float64) {
	for _, cat := range Categories {
		if w[cat] < floor {
			w[cat] = floor
		}
	}

	for i := 0; i < 16; i++ {
		sum := w.Sum()
		if math.Abs(sum-1.0) <= weightSumTolerance/2 {
			break
		}
		for _, cat := range Categories {
			w[cat] /= sum
		}
		clipped := false
		for _, cat := range Categories {
			if w[cat] < floor {
				w[cat] = floor
				clipped = true
			}
		}
		if !clipped {
			break
		}
	}

	largest := Categories[0]
	for _, cat := range Categories[1:] {
		if w[cat] > w[largest] {
			largest = cat
		}
	}
	w[largest] += 1.0 - w.Sum()
}

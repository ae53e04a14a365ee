package matching

import (
	"math"
	"testing"

	"smartmatch/internal/domain/candidate"
)

func prio(evolution, remuneration, proximity, flexibility int) *candidate.Priorities {
	return &candidate.Priorities{
		Evolution:    evolution,
		Remuneration: remuneration,
		Proximity:    proximity,
		Flexibility:  flexibility,
	}
}

func TestComputeWeights_SumAndFloorInvariant(t *testing.T) {
	cal := DefaultCalibration()
	cases := []struct {
		name string
		p    *candidate.Priorities
	}{
		{"no priorities", nil},
		{"neutral", prio(5, 5, 5, 5)},
		{"all max", prio(10, 10, 10, 10)},
		{"all min", prio(0, 0, 0, 0)},
		{"mixed", prio(0, 10, 3, 8)},
		{"salary only", prio(5, 10, 5, 5)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := ComputeWeights(candidate.Candidate{ID: "c1", Priorities: tc.p}, cal)

			if len(w) != len(Categories) {
				t.Fatalf("expected %d categories, got %d", len(Categories), len(w))
			}
			if sum := w.Sum(); math.Abs(sum-1.0) > 1e-6 {
				t.Fatalf("expected weights to sum to 1.0, got %.8f", sum)
			}
			for _, cat := range Categories {
				if w[cat] < cal.WeightFloor-1e-9 {
					t.Fatalf("category %s below floor: %.6f", cat, w[cat])
				}
			}
			if err := w.Validate(); err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestComputeWeights_NoPrioritiesUsesBase(t *testing.T) {
	cal := DefaultCalibration()
	w := ComputeWeights(candidate.Candidate{ID: "c1"}, cal)

	for _, cat := range Categories {
		if math.Abs(w[cat]-cal.BaseWeights[cat]) > 1e-6 {
			t.Fatalf("category %s: expected base weight %.2f, got %.4f", cat, cal.BaseWeights[cat], w[cat])
		}
	}
}

func TestComputeWeights_RemunerationMonotonic(t *testing.T) {
	cal := DefaultCalibration()
	neutral := ComputeWeights(candidate.Candidate{ID: "c1", Priorities: prio(5, 5, 5, 5)}, cal)
	boosted := ComputeWeights(candidate.Candidate{ID: "c1", Priorities: prio(5, 10, 5, 5)}, cal)

	if boosted[CategorySalary] < neutral[CategorySalary] {
		t.Fatalf("raising remuneration 5->10 decreased salary weight: %.4f -> %.4f",
			neutral[CategorySalary], boosted[CategorySalary])
	}
	if boosted[CategorySalary] <= cal.BaseWeights[CategorySalary] {
		t.Fatalf("expected boosted salary weight above base %.2f, got %.4f",
			cal.BaseWeights[CategorySalary], boosted[CategorySalary])
	}
}

func TestComputeWeights_Deterministic(t *testing.T) {
	cal := DefaultCalibration()
	c := candidate.Candidate{ID: "c1", Priorities: prio(2, 9, 4, 7)}

	// Bit-exact across many runs: float addition is order-sensitive, so
	// any map-order dependence in the normalization shows up here.
	first := ComputeWeights(c, cal)
	for i := 0; i < 2000; i++ {
		next := ComputeWeights(c, cal)
		for _, cat := range Categories {
			if math.Float64bits(next[cat]) != math.Float64bits(first[cat]) {
				t.Fatalf("iteration %d, category %s: bits differ %016x vs %016x (%.17g vs %.17g)",
					i, cat, math.Float64bits(first[cat]), math.Float64bits(next[cat]), first[cat], next[cat])
			}
		}
	}
}

func TestComputeWeights_FlooredCategoryNeverZero(t *testing.T) {
	cal := DefaultCalibration()
	// Flexibility at 0 drags its base 0.05 below zero before clipping.
	w := ComputeWeights(candidate.Candidate{ID: "c1", Priorities: prio(5, 5, 5, 0)}, cal)

	if w[CategoryFlexibility] < cal.WeightFloor-1e-9 {
		t.Fatalf("flexibility weight %.4f below floor %.2f", w[CategoryFlexibility], cal.WeightFloor)
	}
}

func TestWeightVector_Validate(t *testing.T) {
	bad := WeightVector{CategorySkills: 0.5, CategorySalary: 0.6}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected validation error for incomplete vector")
	}

	w := WeightVector{}
	for _, cat := range Categories {
		w[cat] = 1.0 / float64(len(Categories))
	}
	if err := w.Validate(); err != nil {
		t.Fatalf("unexpected error for uniform vector: %v", err)
	}
}

package usecase

import (
	"context"
	"fmt"

	"smartmatch/internal/domain/candidate"
	"smartmatch/internal/domain/matching"
	"smartmatch/internal/normalizer"
)

// WeightsUsecase exposes the weight derivation on its own, for callers
// wanting to display "why this weighting" before running a full match.
type WeightsUsecase interface {
	Preview(ctx context.Context, rawCandidate map[string]any) (candidate.Candidate, matching.WeightVector, error)
}

type Weights struct {
	cal matching.Calibration
}

func NewWeightsUsecase(cal matching.Calibration) *Weights {
	return &Weights{cal: cal}
}

func (u *Weights) Preview(_ context.Context, rawCandidate map[string]any) (candidate.Candidate, matching.WeightVector, error) {
	cand, err := normalizer.NormalizeCandidate(rawCandidate)
	if err != nil {
		return candidate.Candidate{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	w := matching.ComputeWeights(cand, u.cal)
	return cand, w, nil
}

package dto

import "smartmatch/internal/domain/matching"

type WeightsResponse struct {
	CandidateID string             `json:"candidate_id"`
	Weights     map[string]float64 `json:"weights"`
}

func FromWeightVector(candidateID string, w matching.WeightVector) WeightsResponse {
	weights := make(map[string]float64, len(w))
	for cat, v := range w {
		weights[string(cat)] = v
	}
	return WeightsResponse{CandidateID: candidateID, Weights: weights}
}

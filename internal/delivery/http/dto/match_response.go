package dto

import (
	"time"

	"smartmatch/internal/domain/matching"
	"smartmatch/internal/usecase"
)

type ScoreBreakdownResponse struct {
	RawPercentage        float64  `json:"raw_percentage"`
	Weight               float64  `json:"weight"`
	WeightedContribution float64  `json:"weighted_contribution"`
	Explanation          string   `json:"explanation"`
	MatchedItems         []string `json:"matched_items"`
	MissingItems         []string `json:"missing_items"`
}

type MatchResultResponse struct {
	OfferID         string                            `json:"offer_id"`
	CandidateID     string                            `json:"candidate_id"`
	OverallScore    int                               `json:"overall_score"`
	Confidence      string                            `json:"confidence"`
	ScoreBreakdown  map[string]ScoreBreakdownResponse `json:"score_breakdown"`
	Strengths       []string                          `json:"strengths"`
	Gaps            []string                          `json:"gaps"`
	Recommendations []string                          `json:"recommendations"`
	AlgorithmUsed   string                            `json:"algorithm_used"`
	CreatedAt       time.Time                         `json:"created_at"`
}

type RankMetaResponse struct {
	AlgorithmUsed string `json:"algorithm_used"`
	Evaluated     int    `json:"evaluated"`
	OffersSkipped int    `json:"offers_skipped"`
	Truncated     bool   `json:"truncated"`
	CacheHit      bool   `json:"cache_hit"`
}

func FromMatchResult(res matching.MatchResult) MatchResultResponse {
	breakdown := make(map[string]ScoreBreakdownResponse, len(res.ScoreBreakdown))
	for cat, b := range res.ScoreBreakdown {
		breakdown[string(cat)] = ScoreBreakdownResponse{
			RawPercentage:        b.RawPercentage,
			Weight:               b.Weight,
			WeightedContribution: b.WeightedContribution,
			Explanation:          b.Explanation,
			MatchedItems:         b.MatchedItems,
			MissingItems:         b.MissingItems,
		}
	}
	return MatchResultResponse{
		OfferID:         res.OfferID,
		CandidateID:     res.CandidateID,
		OverallScore:    res.OverallScore,
		Confidence:      string(res.Confidence),
		ScoreBreakdown:  breakdown,
		Strengths:       res.Strengths,
		Gaps:            res.Gaps,
		Recommendations: res.Recommendations,
		AlgorithmUsed:   res.AlgorithmUsed,
		CreatedAt:       res.CreatedAt,
	}
}

func FromRankMeta(meta usecase.BatchMeta) RankMetaResponse {
	return RankMetaResponse{
		AlgorithmUsed: meta.Algorithm,
		Evaluated:     meta.Evaluated,
		OffersSkipped: meta.OffersSkipped,
		Truncated:     meta.Truncated,
		CacheHit:      meta.CacheHit,
	}
}

package matching

import "time"

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

func (c Confidence) rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	}
	return 0
}

// ScoreBreakdown is the explainable sub-result for one category.
// Defaulted marks scores produced from a neutral fallback (missing data)
// rather than real input; defaulted categories lower the confidence.
type ScoreBreakdown struct {
	RawPercentage        float64
	Weight               float64
	WeightedContribution float64
	Explanation          string
	MatchedItems         []string
	MissingItems         []string
	Defaulted            bool
}

// MatchResult is the outcome of scoring one candidate against one offer.
// Immutable once produced.
type MatchResult struct {
	OfferID         string
	CandidateID     string
	OverallScore    int
	Confidence      Confidence
	ScoreBreakdown  map[Category]ScoreBreakdown
	Strengths       []string
	Gaps            []string
	Recommendations []string
	AlgorithmUsed   string
	CreatedAt       time.Time
}

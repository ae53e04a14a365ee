package dto

// RankRequestBody is the single matching entry point's payload. Candidate
// and offers are raw dicts in either English or French field naming; the
// normalizer resolves them. OfferIDs reference offers stored server-side.
type RankRequestBody struct {
	Candidate map[string]any   `json:"candidate"`
	Offers    []map[string]any `json:"offers"`
	OfferIDs  []string         `json:"offer_ids"`
	MinScore  float64          `json:"min_score"`
	Limit     int              `json:"limit"`
}

type WeightsRequestBody struct {
	Candidate map[string]any `json:"candidate"`
}

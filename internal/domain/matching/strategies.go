package matching

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"smartmatch/internal/domain/candidate"
	"smartmatch/internal/domain/offer"
)

// ErrStrategyUnavailable is returned by a strategy whose input lacks the
// data it needs (no coordinates, no questionnaire). The selector recovers
// from it through the basic fallback.
var ErrStrategyUnavailable = errors.New("strategy unavailable for this input")

// Strategy is one scoring variant runnable over a whole batch. Every
// implementation tags its results with Name().
type Strategy interface {
	Name() string
	Rank(ctx context.Context, c candidate.Candidate, offers []offer.JobOffer, p RankParams) (RankOutput, error)
}

// BasicWeighted is the dynamic-weighting engine: per-candidate weights
// from declared priorities, seven category sub-scores, explainable
// aggregation. Guaranteed non-failing on sanitized input, which makes it
// the fallback path.
type BasicWeighted struct {
	cal    Calibration
	engine *Engine
	ranker *Ranker
}

func NewBasicWeighted(cal Calibration, ranker *Ranker) *BasicWeighted {
	return &BasicWeighted{cal: cal, engine: NewEngine(cal), ranker: ranker}
}

func (s *BasicWeighted) Name() string { return "basic_weighted" }

func (s *BasicWeighted) Rank(ctx context.Context, c candidate.Candidate, offers []offer.JobOffer, p RankParams) (RankOutput, error) {
	w := ComputeWeights(c, s.cal)
	out, err := s.ranker.Rank(ctx, s.engine.Score, c, offers, w, p)
	if err != nil {
		return RankOutput{}, err
	}
	tagResults(&out, s.Name())
	return out, nil
}

// Geolocation is the distance-aware variant: identical weighting, but the
// location category scores from the haversine distance between candidate
// and workplace coordinates instead of falling back to neutral.
type Geolocation struct {
	cal    Calibration
	engine *Engine
	ranker *Ranker
}

func NewGeolocation(cal Calibration, ranker *Ranker) *Geolocation {
	e := NewEngine(cal)
	e.Distance = haversineDistance
	return &Geolocation{cal: cal, engine: e, ranker: ranker}
}

func (s *Geolocation) Name() string { return "geo_weighted" }

func (s *Geolocation) Rank(ctx context.Context, c candidate.Candidate, offers []offer.JobOffer, p RankParams) (RankOutput, error) {
	if !c.HasCoordinates() {
		return RankOutput{}, fmt.Errorf("%w: candidate has no coordinates", ErrStrategyUnavailable)
	}
	w := ComputeWeights(c, s.cal)
	out, err := s.ranker.Rank(ctx, s.engine.Score, c, offers, w, p)
	if err != nil {
		return RankOutput{}, err
	}
	tagResults(&out, s.Name())
	return out, nil
}

func haversineDistance(c candidate.Candidate, o offer.JobOffer) (float64, bool) {
	if !c.HasCoordinates() || !o.HasCoordinates() {
		return 0, false
	}
	const earthRadiusKm = 6371.0
	lat1 := *c.Latitude * math.Pi / 180
	lat2 := *o.Latitude * math.Pi / 180
	dLat := (*o.Latitude - *c.Latitude) * math.Pi / 180
	dLon := (*o.Longitude - *c.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a)), true
}

// SemanticQuestionnaire is the culture-weighted variant: the weighted base
// score is blended with the alignment between candidate and offer
// questionnaire answers. Requires questionnaires on both sides.
type SemanticQuestionnaire struct {
	cal    Calibration
	engine *Engine
	ranker *Ranker

	// Blend ratio between the base engine score and the questionnaire
	// alignment score.
	baseShare float64
}

func NewSemanticQuestionnaire(cal Calibration, ranker *Ranker) *SemanticQuestionnaire {
	return &SemanticQuestionnaire{cal: cal, engine: NewEngine(cal), ranker: ranker, baseShare: 0.85}
}

func (s *SemanticQuestionnaire) Name() string { return "semantic_questionnaire" }

func (s *SemanticQuestionnaire) Rank(ctx context.Context, c candidate.Candidate, offers []offer.JobOffer, p RankParams) (RankOutput, error) {
	if len(c.Questionnaire) == 0 {
		return RankOutput{}, fmt.Errorf("%w: candidate has no questionnaire", ErrStrategyUnavailable)
	}

	w := ComputeWeights(c, s.cal)
	score := func(cand candidate.Candidate, o offer.JobOffer, wv WeightVector) (MatchResult, error) {
		res, err := s.engine.Score(cand, o, wv)
		if err != nil {
			return MatchResult{}, err
		}
		align, err := questionnaireAlignment(cand.Questionnaire, o.Questionnaire)
		if err != nil {
			return MatchResult{}, err
		}
		blended := s.baseShare*float64(res.OverallScore) + (1-s.baseShare)*align
		res.OverallScore = int(math.Round(blended))
		return res, nil
	}

	out, err := s.ranker.Rank(ctx, score, c, offers, w, p)
	if err != nil {
		return RankOutput{}, err
	}
	tagResults(&out, s.Name())
	return out, nil
}

// questionnaireAlignment compares answers sharing a key: scalar answers
// match on case-insensitive equality, list answers on set overlap.
// No comparable answer pair means the variant cannot run for this offer.
func questionnaireAlignment(cand, off map[string]any) (float64, error) {
	if len(off) == 0 {
		return 0, fmt.Errorf("%w: offer has no questionnaire", ErrStrategyUnavailable)
	}

	compared := 0
	total := 0.0
	for key, ov := range off {
		cv, ok := cand[key]
		if !ok {
			continue
		}
		switch want := ov.(type) {
		case string:
			got, ok := cv.(string)
			if !ok {
				continue
			}
			compared++
			if strings.EqualFold(strings.TrimSpace(got), strings.TrimSpace(want)) {
				total += 100
			}
		case []any:
			got, ok := cv.([]any)
			if !ok {
				continue
			}
			compared++
			total += listOverlap(got, want)
		}
	}
	if compared == 0 {
		return 0, fmt.Errorf("%w: no comparable questionnaire answers", ErrStrategyUnavailable)
	}
	return total / float64(compared), nil
}

func listOverlap(got, want []any) float64 {
	if len(want) == 0 {
		return 0
	}
	have := make(map[string]struct{}, len(got))
	for _, v := range got {
		if s, ok := v.(string); ok {
			have[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
		}
	}
	hits := 0
	for _, v := range want {
		s, ok := v.(string)
		if !ok {
			continue
		}
		if _, found := have[strings.ToLower(strings.TrimSpace(s))]; found {
			hits++
		}
	}
	return float64(hits) / float64(len(want)) * 100
}

func tagResults(out *RankOutput, name string) {
	out.Algorithm = name
	for i := range out.Results {
		out.Results[i].AlgorithmUsed = name
	}
}

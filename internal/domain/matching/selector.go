package matching

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"smartmatch/internal/domain/candidate"
	"smartmatch/internal/domain/offer"
)

// Path tags one scoring strategy. The decision function picks a path from
// input richness; dispatch goes through a lookup table, never nested
// conditionals.
type Path string

const (
	PathNexten Path = "nexten"
	PathSmart  Path = "smart"
	PathBasic  Path = "basic"
)

// FallbackAlgorithm tags results produced by the one-shot retry on the
// basic path after a richer strategy errored out.
const FallbackAlgorithm = "fallback_basic"

// ChoosePath is the pure selection rule, first match wins:
// questionnaires on both sides pick the semantic variant, coordinates on
// both sides pick the geolocation variant, anything else the basic engine.
func ChoosePath(c candidate.Candidate, offers []offer.JobOffer) Path {
	if len(c.Questionnaire) > 0 && anyOffer(offers, func(o offer.JobOffer) bool { return len(o.Questionnaire) > 0 }) {
		return PathNexten
	}
	if c.HasCoordinates() && anyOffer(offers, offer.JobOffer.HasCoordinates) {
		return PathSmart
	}
	return PathBasic
}

func anyOffer(offers []offer.JobOffer, pred func(offer.JobOffer) bool) bool {
	for _, o := range offers {
		if pred(o) {
			return true
		}
	}
	return false
}

// Selector dispatches a matching request to the strategy its input can
// support, recovering strategy failures once through the basic path.
type Selector struct {
	strategies map[Path]Strategy
	basic      Strategy
	log        *zap.Logger
}

func NewSelector(cal Calibration, ranker *Ranker, log *zap.Logger) *Selector {
	if log == nil {
		log = zap.NewNop()
	}
	basic := NewBasicWeighted(cal, ranker)
	return &Selector{
		strategies: map[Path]Strategy{
			PathNexten: NewSemanticQuestionnaire(cal, ranker),
			PathSmart:  NewGeolocation(cal, ranker),
			PathBasic:  basic,
		},
		basic: basic,
		log:   log,
	}
}

// Run executes the selected strategy. When it fails it retries exactly
// once on the basic path and tags the results fallback_basic; this is the
// only retry policy in the core. Contract violations
// (ErrInvalidWeightVector, ErrInvalidArgument) are never recovered: they
// indicate a bug or a bad caller argument, not an input-richness problem.
func (s *Selector) Run(ctx context.Context, c candidate.Candidate, offers []offer.JobOffer, p RankParams) (RankOutput, error) {
	path := ChoosePath(c, offers)
	strat := s.strategies[path]

	out, err := strat.Rank(ctx, c, offers, p)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, ErrInvalidWeightVector) || errors.Is(err, ErrInvalidArgument) {
		return RankOutput{}, err
	}

	s.log.Warn("strategy failed, falling back to basic path",
		zap.String("path", string(path)),
		zap.String("strategy", strat.Name()),
		zap.Error(err),
	)

	out, err = s.basic.Rank(ctx, c, offers, p)
	if err != nil {
		return RankOutput{}, err
	}
	tagResults(&out, FallbackAlgorithm)
	return out, nil
}

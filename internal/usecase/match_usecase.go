package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"smartmatch/internal/domain/matching"
	"smartmatch/internal/domain/offer"
	"smartmatch/internal/extractor"
	"smartmatch/internal/normalizer"
	"smartmatch/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

type MatchUsecase interface {
	Rank(ctx context.Context, req RankRequest) (RankResponse, error)
}

// RankRequest is the single entry point's input: one raw candidate
// against inline raw offers and/or offer ids resolved from storage.
type RankRequest struct {
	Candidate map[string]any
	Offers    []map[string]any
	OfferIDs  []string
	MinScore  float64
	Limit     int
}

// BatchMeta summarizes what happened to the batch: malformed offers are
// excluded silently and only surface here as a count.
type BatchMeta struct {
	Algorithm     string `json:"algorithm_used"`
	Evaluated     int    `json:"evaluated"`
	OffersSkipped int    `json:"offers_skipped"`
	Truncated     bool   `json:"truncated"`
	CacheHit      bool   `json:"cache_hit"`
}

type RankResponse struct {
	CandidateID string                 `json:"candidate_id"`
	Results     []matching.MatchResult `json:"results"`
	Meta        BatchMeta              `json:"meta"`
}

type Match struct {
	selector *matching.Selector
	offers   repository.OfferRepository
	cache    ResultCache
	fields   extractor.FieldExtractor
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewMatchUsecase(selector *matching.Selector, offers repository.OfferRepository, cache ResultCache, fields extractor.FieldExtractor, cacheTTL time.Duration, log *zap.Logger) *Match {
	if log == nil {
		log = zap.NewNop()
	}
	return &Match{
		selector: selector,
		offers:   offers,
		cache:    cache,
		fields:   fields,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

// Rank normalizes the raw inputs, dispatches to the selected strategy and
// returns the ranked results with batch metadata. All storage and
// extractor I/O happens here, before the pure scoring core runs.
func (u *Match) Rank(ctx context.Context, req RankRequest) (RankResponse, error) {
	if req.Limit == 0 {
		req.Limit = matching.DefaultLimit
	}
	params := matching.RankParams{MinScore: req.MinScore, Limit: req.Limit}

	cand, err := normalizer.NormalizeCandidate(u.enrichCandidate(ctx, req.Candidate))
	if err != nil {
		return RankResponse{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	offers, skipped, err := u.collectOffers(ctx, req)
	if err != nil {
		return RankResponse{}, err
	}

	key := u.cacheKey(cand, offers, params)
	if u.cache != nil {
		var cached RankResponse
		if hit, _ := u.cache.GetJSON(ctx, key, &cached); hit {
			cached.Meta.CacheHit = true
			return cached, nil
		}
	}

	out, err := u.selector.Run(ctx, cand, offers, params)
	if err != nil {
		return RankResponse{}, err
	}

	resp := RankResponse{
		CandidateID: cand.ID,
		Results:     out.Results,
		Meta: BatchMeta{
			Algorithm:     out.Algorithm,
			Evaluated:     out.Evaluated,
			OffersSkipped: skipped,
			Truncated:     out.Truncated,
		},
	}

	// Truncated batches are partial by definition; caching them would
	// serve incomplete rankings after the cancellation is long gone.
	if u.cache != nil && !out.Truncated {
		if err := u.cache.SetJSON(ctx, key, resp, u.cacheTTL); err != nil {
			u.log.Debug("match cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}

// enrichCandidate merges GPT-extracted fields under the raw dict when the
// request carries free text. Extractor failure falls back silently to the
// fields already present.
func (u *Match) enrichCandidate(ctx context.Context, raw map[string]any) map[string]any {
	if raw == nil {
		raw = map[string]any{}
	}
	text, ok := raw["raw_text"].(string)
	if !ok || text == "" || u.fields == nil {
		return raw
	}

	extracted, err := u.fields.ExtractStructuredFields(ctx, text)
	if err != nil {
		u.log.Debug("field extraction failed, using raw fields only", zap.Error(err))
		return raw
	}
	merged := make(map[string]any, len(raw)+len(extracted))
	for k, v := range extracted {
		merged[k] = v
	}
	// Manually entered fields win over extracted ones.
	for k, v := range raw {
		merged[k] = v
	}
	return merged
}

// collectOffers normalizes inline offers and storage-resolved offers into
// one batch. Offers failing validation or duplicating an id are skipped
// and counted, never aborting the batch; stored ids that resolve to
// nothing count as skipped too.
func (u *Match) collectOffers(ctx context.Context, req RankRequest) ([]offer.JobOffer, int, error) {
	raws := make([]map[string]any, 0, len(req.Offers)+len(req.OfferIDs))
	raws = append(raws, req.Offers...)

	skipped := 0
	if len(req.OfferIDs) > 0 {
		if u.offers == nil {
			return nil, 0, fmt.Errorf("%w: offer ids given but no offer storage configured", ErrInvalidInput)
		}
		records, err := u.offers.FindByIDs(ctx, req.OfferIDs)
		if err != nil {
			u.log.Error("offer lookup failed", zap.Error(err))
			return nil, 0, ErrInternal
		}
		skipped += len(req.OfferIDs) - len(records)
		for _, rec := range records {
			raws = append(raws, rec.Payload)
		}
	}

	seen := make(map[string]struct{}, len(raws))
	out := make([]offer.JobOffer, 0, len(raws))
	for _, raw := range raws {
		o, err := normalizer.NormalizeOffer(raw)
		if err != nil {
			skipped++
			u.log.Debug("offer skipped during normalization", zap.Error(err))
			continue
		}
		if _, dup := seen[o.ID]; dup {
			skipped++
			u.log.Debug("duplicate offer id skipped", zap.String("offer_id", o.ID))
			continue
		}
		seen[o.ID] = struct{}{}
		out = append(out, o)
	}
	return out, skipped, nil
}

// cacheKey fingerprints the normalized inputs. Ranking is deterministic
// for identical inputs, so identical fingerprints can safely share a
// cached response; offer order does not affect the ranking and is
// canonicalized away.
func (u *Match) cacheKey(c any, offers []offer.JobOffer, p matching.RankParams) string {
	sorted := append([]offer.JobOffer(nil), offers...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	h := sha256.New()
	enc := json.NewEncoder(h)
	_ = enc.Encode(c)
	_ = enc.Encode(sorted)
	_ = enc.Encode(p)
	return "match:rank:" + hex.EncodeToString(h.Sum(nil))
}

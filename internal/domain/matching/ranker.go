package matching

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"smartmatch/internal/domain/candidate"
	"smartmatch/internal/domain/offer"
)

// ErrInvalidArgument signals bad caller-supplied ranking parameters
// (limit below 1, negative minimum score). Surfaced immediately.
var ErrInvalidArgument = errors.New("invalid argument")

const DefaultLimit = 10

type RankParams struct {
	MinScore float64
	Limit    int
}

func (p RankParams) validate() error {
	if p.Limit < 1 {
		return fmt.Errorf("%w: limit must be >= 1, got %d", ErrInvalidArgument, p.Limit)
	}
	if p.MinScore < 0 {
		return fmt.Errorf("%w: min score must be >= 0, got %.2f", ErrInvalidArgument, p.MinScore)
	}
	return nil
}

// RankOutput carries the ranked results plus the batch metadata surfaced
// to callers. Truncated is set when the context was cancelled mid-batch
// and the results cover only the offers scored so far.
type RankOutput struct {
	Results   []MatchResult
	Evaluated int
	Truncated bool
	Algorithm string
}

type scoreFunc func(c candidate.Candidate, o offer.JobOffer, w WeightVector) (MatchResult, error)

// Ranker scores a candidate against a batch of offers concurrently,
// then filters, sorts and truncates the results. Workers is the upper
// bound on concurrent scorers; zero means min(N, 2 x CPU count).
type Ranker struct {
	Workers int
}

func NewRanker() *Ranker {
	return &Ranker{}
}

func (r *Ranker) workerCount(n int) int {
	w := r.Workers
	if w <= 0 {
		w = runtime.NumCPU() * 2
	}
	if w > n {
		w = n
	}
	if w < 1 {
		w = 1
	}
	return w
}

// Rank runs score over every offer through a bounded worker pool. Scoring
// one pair is independent of every other, so the batch parallelizes
// freely; candidate and weights are shared read-only. A cancelled context
// stops the dispatch loop and returns partial results with Truncated set
// instead of an error. A scoring error aborts the batch and surfaces to
// the caller; the selector decides whether it is recoverable.
func (r *Ranker) Rank(ctx context.Context, score scoreFunc, c candidate.Candidate, offers []offer.JobOffer, w WeightVector, p RankParams) (RankOutput, error) {
	if err := p.validate(); err != nil {
		return RankOutput{}, err
	}
	if len(offers) == 0 {
		return RankOutput{Results: []MatchResult{}}, nil
	}

	type scored struct {
		idx int
		res MatchResult
		err error
	}

	tasks := make(chan int)
	out := make(chan scored, len(offers))

	var wg sync.WaitGroup
	workers := r.workerCount(len(offers))
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for idx := range tasks {
				res, err := score(c, offers[idx], w)
				out <- scored{idx: idx, res: res, err: err}
			}
		}()
	}

	dispatched := 0
	truncated := false
dispatch:
	for idx := range offers {
		select {
		case <-ctx.Done():
			truncated = true
			break dispatch
		case tasks <- idx:
			dispatched++
		}
	}
	close(tasks)
	wg.Wait()
	close(out)

	results := make([]MatchResult, 0, dispatched)
	var scoreErr error
	for s := range out {
		if s.err != nil {
			if scoreErr == nil {
				scoreErr = s.err
			}
			continue
		}
		results = append(results, s.res)
	}
	if scoreErr != nil {
		return RankOutput{}, scoreErr
	}

	sortResults(results)

	filtered := results[:0]
	for _, res := range results {
		if float64(res.OverallScore) >= p.MinScore {
			filtered = append(filtered, res)
		}
	}
	if len(filtered) > p.Limit {
		filtered = filtered[:p.Limit]
	}

	return RankOutput{
		Results:   append([]MatchResult(nil), filtered...),
		Evaluated: dispatched,
		Truncated: truncated,
	}, nil
}

// sortResults orders by overall score descending, then confidence
// (high > medium > low), then offer id ascending. Never by insertion
// order, so output is reproducible across runs.
func sortResults(results []MatchResult) {
	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.OverallScore != b.OverallScore {
			return a.OverallScore > b.OverallScore
		}
		if a.Confidence != b.Confidence {
			return a.Confidence.rank() > b.Confidence.rank()
		}
		return a.OfferID < b.OfferID
	})
}

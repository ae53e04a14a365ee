package matching

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"smartmatch/internal/domain/candidate"
	"smartmatch/internal/domain/offer"
)

func ptr(f float64) *float64 { return &f }

func TestChoosePath(t *testing.T) {
	cases := []struct {
		name   string
		cand   candidate.Candidate
		offers []offer.JobOffer
		want   Path
	}{
		{
			name:   "plain inputs take the basic path",
			cand:   candidate.Candidate{ID: "c1"},
			offers: []offer.JobOffer{{ID: "o1"}},
			want:   PathBasic,
		},
		{
			name: "coordinates on both sides take the smart path",
			cand: candidate.Candidate{ID: "c1", Latitude: ptr(48.85), Longitude: ptr(2.35)},
			offers: []offer.JobOffer{
				{ID: "o1"},
				{ID: "o2", Latitude: ptr(45.76), Longitude: ptr(4.84)},
			},
			want: PathSmart,
		},
		{
			name: "candidate coordinates alone stay basic",
			cand: candidate.Candidate{ID: "c1", Latitude: ptr(48.85), Longitude: ptr(2.35)},
			offers: []offer.JobOffer{
				{ID: "o1"},
			},
			want: PathBasic,
		},
		{
			name: "questionnaires on both sides take the nexten path",
			cand: candidate.Candidate{ID: "c1", Questionnaire: map[string]any{"culture": "startup"}},
			offers: []offer.JobOffer{
				{ID: "o1", Questionnaire: map[string]any{"culture": "startup"}},
			},
			want: PathNexten,
		},
		{
			name: "questionnaires win over coordinates",
			cand: candidate.Candidate{
				ID:            "c1",
				Latitude:      ptr(48.85),
				Longitude:     ptr(2.35),
				Questionnaire: map[string]any{"culture": "startup"},
			},
			offers: []offer.JobOffer{
				{ID: "o1", Latitude: ptr(45.76), Longitude: ptr(4.84), Questionnaire: map[string]any{"culture": "corporate"}},
			},
			want: PathNexten,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ChoosePath(tc.cand, tc.offers); got != tc.want {
				t.Fatalf("expected path %s, got %s", tc.want, got)
			}
		})
	}
}

func TestSelector_BasicPathTagsResults(t *testing.T) {
	sel := NewSelector(DefaultCalibration(), NewRanker(), zap.NewNop())
	c := candidate.Candidate{ID: "c1", Skills: []string{"go"}}
	offers := []offer.JobOffer{{ID: "o1", RequiredSkills: []string{"go"}}}

	out, err := sel.Run(context.Background(), c, offers, RankParams{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Algorithm != "basic_weighted" {
		t.Fatalf("expected basic_weighted, got %s", out.Algorithm)
	}
	for _, res := range out.Results {
		if res.AlgorithmUsed != "basic_weighted" {
			t.Fatalf("result %s tagged %s, expected basic_weighted", res.OfferID, res.AlgorithmUsed)
		}
	}
}

func TestSelector_GeoPathUsesDistance(t *testing.T) {
	sel := NewSelector(DefaultCalibration(), NewRanker(), zap.NewNop())
	// Paris candidate, Lyon offer: ~390 km apart, scores in the lowest
	// distance band instead of the neutral default.
	c := candidate.Candidate{
		ID:        "c1",
		Location:  "Paris",
		Latitude:  ptr(48.8566),
		Longitude: ptr(2.3522),
	}
	offers := []offer.JobOffer{{
		ID:        "o1",
		Location:  "Lyon",
		Latitude:  ptr(45.7640),
		Longitude: ptr(4.8357),
	}}

	out, err := sel.Run(context.Background(), c, offers, RankParams{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Algorithm != "geo_weighted" {
		t.Fatalf("expected geo_weighted, got %s", out.Algorithm)
	}
	loc := out.Results[0].ScoreBreakdown[CategoryLocation]
	if loc.Defaulted {
		t.Fatalf("expected a distance-based location score, got a defaulted one")
	}
	if loc.RawPercentage != 25 {
		t.Fatalf("expected 25%% for a ~390 km commute, got %.0f%%", loc.RawPercentage)
	}
}

func TestSelector_SemanticPathBlendsQuestionnaire(t *testing.T) {
	sel := NewSelector(DefaultCalibration(), NewRanker(), zap.NewNop())
	c := candidate.Candidate{
		ID:            "c1",
		Skills:        []string{"go"},
		Questionnaire: map[string]any{"culture": "startup", "values": []any{"autonomy", "impact"}},
	}
	offers := []offer.JobOffer{{
		ID:             "o1",
		RequiredSkills: []string{"go"},
		Questionnaire:  map[string]any{"culture": "startup", "values": []any{"autonomy", "hierarchy"}},
	}}

	out, err := sel.Run(context.Background(), c, offers, RankParams{Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Algorithm != "semantic_questionnaire" {
		t.Fatalf("expected semantic_questionnaire, got %s", out.Algorithm)
	}
}

func TestSelector_FallsBackToBasicOnce(t *testing.T) {
	sel := NewSelector(DefaultCalibration(), NewRanker(), zap.NewNop())
	// Questionnaires on both sides select the semantic path, but the
	// answers share no comparable key, so the strategy errors out and the
	// selector retries through the basic engine.
	c := candidate.Candidate{
		ID:            "c1",
		Skills:        []string{"go"},
		Questionnaire: map[string]any{"culture": "startup"},
	}
	offers := []offer.JobOffer{{
		ID:             "o1",
		RequiredSkills: []string{"go"},
		Questionnaire:  map[string]any{"team_size": "12"},
	}}

	out, err := sel.Run(context.Background(), c, offers, RankParams{Limit: 10})
	if err != nil {
		t.Fatalf("expected the fallback to absorb the strategy failure: %v", err)
	}
	if out.Algorithm != FallbackAlgorithm {
		t.Fatalf("expected %s, got %s", FallbackAlgorithm, out.Algorithm)
	}
	if len(out.Results) != 1 {
		t.Fatalf("expected one result from the fallback, got %d", len(out.Results))
	}
	if out.Results[0].AlgorithmUsed != FallbackAlgorithm {
		t.Fatalf("result tagged %s, expected %s", out.Results[0].AlgorithmUsed, FallbackAlgorithm)
	}
}

func TestSelector_ContractViolationsAreNotRecovered(t *testing.T) {
	sel := NewSelector(DefaultCalibration(), NewRanker(), zap.NewNop())
	c := candidate.Candidate{ID: "c1"}
	offers := []offer.JobOffer{{ID: "o1"}}

	_, err := sel.Run(context.Background(), c, offers, RankParams{Limit: 0})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument to propagate, got %v", err)
	}
}

func TestHaversineDistance(t *testing.T) {
	c := candidate.Candidate{Latitude: ptr(48.8566), Longitude: ptr(2.3522)}
	o := offer.JobOffer{Latitude: ptr(45.7640), Longitude: ptr(4.8357)}

	km, ok := haversineDistance(c, o)
	if !ok {
		t.Fatalf("expected a distance for two located points")
	}
	// Paris-Lyon great-circle distance is roughly 392 km.
	if km < 380 || km > 405 {
		t.Fatalf("Paris-Lyon distance out of range: %.1f km", km)
	}

	if _, ok := haversineDistance(candidate.Candidate{}, o); ok {
		t.Fatalf("expected no distance without candidate coordinates")
	}
}
